package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdapt_ConvertsPairs(t *testing.T) {
	m := &mockLogger{}
	m.On("Info", "probe started", []Field{
		LogField("probe", "get-primitive"),
		LogField("step", 2),
	}).Once()
	m.On("Warn", "odd", []Field{LogField("dangling", "<missing>")}).Once()
	m.On("Error", "bad key", []Field{LogField("arg0", "v")}).Once()
	m.On("Debug", "none", []Field{}).Once()

	p := Adapt(m)
	p.Info("probe started", "probe", "get-primitive", "step", 2)
	p.Warn("odd", "dangling")
	p.Error("bad key", 7, "v")
	p.Debug("none")

	m.AssertExpectations(t)
}

func TestAdapt_CloseDoesNotCloseInner(t *testing.T) {
	m := &mockLogger{}
	assert.NoError(t, Adapt(m).Close())
	m.AssertNotCalled(t, "Close")
}

func TestAdapt_NilUsesNullLogger(t *testing.T) {
	p := Adapt(nil)
	assert.NotPanics(t, func() { p.Info("x", "k", "v") })
}
