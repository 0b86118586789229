package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/labstack/gommon/log"
	"github.com/spf13/cobra"

	"winedash/internal/dataset"
	"winedash/internal/engine"
	"winedash/internal/export"
	"winedash/internal/models"
	"winedash/internal/storage"
)

func (a *app) reportCmd() *cobra.Command {
	var sel selectionFlags
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the dashboard statistics for a selection",
		RunE: func(cmd *cobra.Command, _ []string) error {
			sub, err := a.loadFiltered(cmd, &sel)
			if err != nil {
				return err
			}
			return writeReport(cmd.OutOrStdout(), sub.Aggregate())
		},
	}
	sel.register(cmd.Flags())
	return cmd
}

func writeReport(out io.Writer, data *models.DashboardData) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "Wines selected:\t%d\n", data.Count)
	fmt.Fprintf(tw, "Correlation between points and price:\t%s\n\n", data.Correlation)

	fmt.Fprintln(tw, "PROVINCE\tAVG PRICE\tAVG POINTS")
	points := make(map[string]float64, len(data.AvgPointsByProvince))
	for _, g := range data.AvgPointsByProvince {
		points[g.Key] = g.Mean
	}
	for _, g := range data.AvgPriceByProvince {
		fmt.Fprintf(tw, "%s\t%.2f\t%.2f\n", g.Key, g.Mean, points[g.Key])
	}

	fmt.Fprintln(tw, "\nDESIGNATION\tPRICE MEAN\tPRICE STD\tCOUNT\tPOINTS MEAN\tPOINTS STD")
	for _, d := range data.Designations {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%s\n",
			d.Designation, d.Price.Mean, d.Price.Std, d.Price.Count, d.Points.Mean, d.Points.Std)
	}
	return tw.Flush()
}

func (a *app) exportCmd() *cobra.Command {
	var (
		sel    selectionFlags
		format string
		out    string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the filtered records to a csv, xlsx or arrow file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if out == "" {
				out = dataset.FileName + "." + format
			}
			sub, err := a.loadFiltered(cmd, &sel)
			if err != nil {
				return err
			}
			if err := writeExport(out, format, sub); err != nil {
				return err
			}
			log.Infof("Wrote %d records to %s", sub.Len(), out)
			return nil
		},
	}
	sel.register(cmd.Flags())
	cmd.Flags().StringVar(&format, "format", "csv", "csv, xlsx or arrow")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default german_wine_analysis.<format>)")
	return cmd
}

func writeExport(path, format string, cs *engine.ColumnStore) (err error) {
	var write func(io.Writer) error
	switch format {
	case "csv":
		write = func(w io.Writer) error { return export.WriteCSV(w, cs.Wines()) }
	case "xlsx":
		write = func(w io.Writer) error { return export.WriteXLSX(w, cs.Wines()) }
	case "arrow":
		write = cs.WriteArrow
	default:
		return fmt.Errorf("unknown export format %q", format)
	}

	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return write(f)
}

func (a *app) seedCmd() *cobra.Command {
	var db string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Copy the records of the configured source into a SQLite database",
		RunE: func(cmd *cobra.Command, _ []string) error {
			src, err := openSource(a.cfg.Source)
			if err != nil {
				return err
			}
			cs, err := engine.LoadColumnar(cmd.Context(), src)
			if err != nil {
				return err
			}
			conn, err := storage.Open(cmd.Context(), db)
			if err != nil {
				return err
			}
			defer conn.Close()
			return storage.Seed(cmd.Context(), conn, cs.Wines())
		},
	}
	cmd.Flags().StringVar(&db, "db", "wines.db", "SQLite database file")
	return cmd
}
