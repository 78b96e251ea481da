package object

import "sync"

// Symbol is a unique-identity value usable as a property key.
// Equality is pointer identity: two symbols created with the same
// description are never equal.
type Symbol struct {
	description string
	registered  bool
}

// NewSymbol creates a unique symbol that is not entered in the
// global registry.
func NewSymbol(description string) *Symbol {
	return &Symbol{description: description}
}

func (s *Symbol) Kind() Kind { return KindSymbol }

func (s *Symbol) String() string {
	return "Symbol(" + s.description + ")"
}

// Description returns the label the symbol was created with.
func (s *Symbol) Description() string { return s.description }

// Registered reports whether the symbol came from SymbolFor.
func (s *Symbol) Registered() bool { return s.registered }

// symbolRegistry is the process-wide table behind SymbolFor. It is
// safe for concurrent use.
type symbolRegistry struct {
	mu     sync.Mutex
	byName map[string]*Symbol
}

var globalSymbols = &symbolRegistry{
	byName: make(map[string]*Symbol),
}

// SymbolFor returns the interned symbol registered under name,
// creating and registering it on first use.
func SymbolFor(name string) *Symbol {
	globalSymbols.mu.Lock()
	defer globalSymbols.mu.Unlock()

	if s, ok := globalSymbols.byName[name]; ok {
		return s
	}
	s := &Symbol{description: name, registered: true}
	globalSymbols.byName[name] = s
	return s
}

// KeyFor returns the registry name of an interned symbol. Unique
// symbols report false.
func KeyFor(s *Symbol) (string, bool) {
	if s == nil || !s.registered {
		return "", false
	}
	return s.description, true
}
