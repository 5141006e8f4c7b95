// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package cmd

import (
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/db47h/hwgen"
	"github.com/db47h/hwgen/assemble"
	"github.com/db47h/hwgen/internal/design"
	"github.com/db47h/hwgen/internal/output"
	"github.com/db47h/hwgen/internal/schema"
)

func newGenerateCmd(a *app) *cobra.Command {
	var manifest bool
	cmd := &cobra.Command{
		Use:   "generate <design.hcl>",
		Short: "Generate the HDL files of a design",
		Long: `Generate a top-level file and one file per component variant of a design.

The dialect set in the design file is used unless --dialect is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			start := time.Now()
			ds, err := design.Load(args[0])
			if err != nil {
				return err
			}
			d := a.cfg.HDL()
			if ds.Dialect != "" && !cmd.Flags().Changed("dialect") {
				if d, err = hwgen.ParseDialect(ds.Dialect); err != nil {
					return errors.Wrapf(err, "design %s", ds.Name)
				}
			}
			insts, err := ds.Instances()
			if err != nil {
				return errors.Wrapf(err, "design %s", ds.Name)
			}
			top, err := assemble.Top(cmd.Context(), ds.Name, insts, d, a.cfg.Workers)
			if err != nil {
				return err
			}
			paths, err := top.Write(a.cfg.OutputDir)
			if err != nil {
				return err
			}
			for _, p := range paths {
				output.Info("wrote", "file", p)
			}
			if manifest {
				p := filepath.Join(a.cfg.OutputDir, ds.Name+".yaml")
				if err = writeDesignManifest(p, top, paths); err != nil {
					return err
				}
				output.Info("wrote", "file", p)
			}
			output.Info("design generated", "design", ds.Name, "dialect", d, "instances", len(insts),
				"components", len(top.Components), "elapsed", time.Since(start).Round(time.Millisecond))
			return nil
		},
	}
	cmd.Flags().BoolVar(&manifest, "manifest", false, "also write a YAML manifest of the top-level ports")
	return cmd
}

func writeDesignManifest(path string, top *assemble.Design, files []string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.WithStack(err)
	}
	m := &output.Manifest{Name: top.Top.Name, Inputs: top.Inputs, Outputs: top.Outputs, Wires: top.Signals}
	for _, p := range files {
		m.Files = append(m.Files, filepath.Base(p))
	}
	if err = output.WriteManifest(f, m); err != nil {
		f.Close()
		return err
	}
	return errors.WithStack(f.Close())
}

// familyAttrs resolves a family and validates its attributes given as
// key=value strings.
//
func familyAttrs(id string, kvs []string) (hwgen.Generator, hwgen.Attrs, error) {
	g, ok := lookup(id)
	if !ok {
		return nil, nil, errors.Errorf("unknown component family %q", id)
	}
	attrs, err := hwgen.ParseAttrs(kvs)
	if err != nil {
		return nil, nil, err
	}
	if err = schema.Validate(g.ID(), attrs); err != nil {
		return nil, nil, err
	}
	return g, attrs, nil
}
