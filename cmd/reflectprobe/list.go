package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"digital.vasic.reflectprobe/pkg/checks"
	"digital.vasic.reflectprobe/pkg/registry"
)

func newListCmd(stdout io.Writer) *cobra.Command {
	var asYAML bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the registered probes in execution order",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			reg := registry.NewRegistry()
			if err := checks.Register(reg, nil, checks.All()...); err != nil {
				return err
			}
			defs := reg.ListDefinitions()

			if asYAML {
				data, err := yaml.Marshal(defs)
				if err != nil {
					return fmt.Errorf("marshal definitions: %w", err)
				}
				_, err = stdout.Write(data)
				return err
			}

			w := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tDEPENDS ON")
			for _, d := range defs {
				deps := make([]string, len(d.Dependencies))
				for i, dep := range d.Dependencies {
					deps[i] = string(dep)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n",
					d.ID, d.Name, strings.Join(deps, ","))
			}
			return w.Flush()
		},
	}
	cmd.Flags().BoolVar(&asYAML, "yaml", false,
		"print full probe definitions as YAML")
	return cmd
}
