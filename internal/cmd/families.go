// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/db47h/hwgen"
	"github.com/db47h/hwgen/assemble"
	"github.com/db47h/hwgen/hwlib"
	"github.com/db47h/hwgen/internal/output"
)

// lookup finds a family by identifier or by entity name, like TTL7400.
//
func lookup(id string) (hwgen.Generator, bool) {
	if g, ok := hwlib.Lookup(id); ok {
		return g, true
	}
	return hwlib.Lookup(strings.TrimPrefix(id, "TTL"))
}

func newFamiliesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "families",
		Short: "List the component families",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tDESCRIPTION")
			for _, id := range hwlib.IDs() {
				g, _ := hwlib.Lookup(id)
				desc := ""
				if t, ok := g.(*hwlib.TTL); ok {
					desc = t.Description()
				} else if cs, ok := g.(*hwlib.ColumnScanning); ok {
					desc = fmt.Sprintf("column scanning LED array, %d channel(s)", cs.Channels())
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", id, g.Name(), desc)
			}
			return w.Flush()
		},
	}
}

func newSignalsCmd(a *app) *cobra.Command {
	var kvs []string
	cmd := &cobra.Command{
		Use:   "signals <family>",
		Short: "Print the ports and wires of a component as YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, attrs, err := familyAttrs(args[0], kvs)
			if err != nil {
				return err
			}
			m, err := output.ManifestOf(g, attrs)
			if err != nil {
				return err
			}
			return output.WriteManifest(cmd.OutOrStdout(), m)
		},
	}
	cmd.Flags().StringArrayVarP(&kvs, "attr", "a", nil, "component attribute key=value, repeatable")
	return cmd
}

func newBodyCmd(a *app) *cobra.Command {
	var (
		kvs  []string
		full bool
		name string
		id   int
	)
	cmd := &cobra.Command{
		Use:   "body <family>",
		Short: "Print the generated body of a component",
		Long: `Print the architecture body (VHDL) or module body (Verilog) of a component.

With --full, print the complete file. With --portmap N, print the port map
used to instantiate the component as instance N.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, attrs, err := familyAttrs(args[0], kvs)
			if err != nil {
				return err
			}
			d := a.cfg.HDL()
			var lines []string
			switch {
			case cmd.Flags().Changed("portmap"):
				lines, err = hwgen.PortMap(g, attrs, id, d)
			case full:
				lines, err = assemble.Component(g, attrs, d, name)
			default:
				lines, err = hwgen.ModuleBody(g, attrs, d)
			}
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, l := range lines {
				fmt.Fprintln(out, l)
			}
			output.Debug("body generated", "family", g.ID(), "dialect", d, "lines", len(lines))
			return nil
		},
	}
	f := cmd.Flags()
	f.StringArrayVarP(&kvs, "attr", "a", nil, "component attribute key=value, repeatable")
	f.BoolVar(&full, "full", false, "print the complete entity or module")
	f.StringVar(&name, "name", "", "entity or module name with --full")
	f.IntVar(&id, "portmap", 0, "print the port map of instance `id`")
	return cmd
}
