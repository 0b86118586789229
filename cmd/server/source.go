package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"winedash/internal/dataset"
	"winedash/internal/engine"
	"winedash/internal/models"
	"winedash/internal/storage"
)

// openSource resolves "embedded", "csv:<path>" or "sqlite:<path>".
func openSource(spec string) (engine.Source, error) {
	kind, path, _ := strings.Cut(spec, ":")
	switch kind {
	case "embedded", "":
		return engine.StaticSource(dataset.GermanRieslings()), nil
	case "csv":
		if path == "" {
			return nil, fmt.Errorf("source %q: missing path", spec)
		}
		return engine.CSVSource{Path: path}, nil
	case "sqlite":
		if path == "" {
			return nil, fmt.Errorf("source %q: missing path", spec)
		}
		return storage.SQLiteSource{Path: path}, nil
	}
	return nil, fmt.Errorf("unknown source %q", spec)
}

// selectionFlags are the CLI counterpart of the filter controls.
type selectionFlags struct {
	provinces    []string
	designations []string
}

func (f *selectionFlags) register(fs *pflag.FlagSet) {
	fs.StringSliceVar(&f.provinces, "province", nil, "provinces to include (default all)")
	fs.StringSliceVar(&f.designations, "designation", nil, "designations to include (default all)")
}

// selection keeps the default (everything) for flags the user did not set.
func (f *selectionFlags) selection(cmd *cobra.Command, cs *engine.ColumnStore) models.Selection {
	sel := cs.AllSelected()
	if cmd.Flags().Changed("province") {
		sel.Provinces = f.provinces
	}
	if cmd.Flags().Changed("designation") {
		sel.Designations = f.designations
	}
	return sel
}

func (a *app) loadFiltered(cmd *cobra.Command, f *selectionFlags) (*engine.ColumnStore, error) {
	src, err := openSource(a.cfg.Source)
	if err != nil {
		return nil, err
	}
	cs, err := engine.LoadColumnar(cmd.Context(), src)
	if err != nil {
		return nil, err
	}
	return engine.Filter(cs, f.selection(cmd, cs)), nil
}
