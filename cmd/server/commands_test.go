package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"winedash/internal/dataset"
	"winedash/internal/engine"
	"winedash/internal/export"
	"winedash/internal/models"
	"winedash/internal/storage"
)

func TestOpenSource(t *testing.T) {
	src, err := openSource("embedded")
	require.NoError(t, err)
	assert.IsType(t, engine.StaticSource{}, src)

	src, err = openSource("csv:/tmp/wines.csv")
	require.NoError(t, err)
	assert.Equal(t, engine.CSVSource{Path: "/tmp/wines.csv"}, src)

	src, err = openSource("sqlite:wines.db")
	require.NoError(t, err)
	assert.Equal(t, storage.SQLiteSource{Path: "wines.db"}, src)

	for _, bad := range []string{"csv:", "sqlite", "postgres:db"} {
		_, err := openSource(bad)
		assert.Error(t, err, bad)
	}
}

func TestWriteReport(t *testing.T) {
	cs := engine.NewColumnStore(dataset.GermanRieslings())
	sub := engine.Filter(cs, models.Selection{Provinces: cs.AllSelected().Provinces, Designations: []string{"Lemberger"}})

	var buf bytes.Buffer
	require.NoError(t, writeReport(&buf, sub.Aggregate()))
	out := buf.String()

	assert.Contains(t, out, "Correlation between points and price:  not enough data")
	assert.Contains(t, out, "Wurttemberg")
	lines := strings.Split(out, "\n")
	last := lines[len(lines)-2]
	assert.True(t, strings.HasPrefix(last, "Lemberger"), last)
	assert.Equal(t, 2, strings.Count(last, "not enough data"), last)
}

func TestWriteExport(t *testing.T) {
	cs := engine.NewColumnStore(dataset.GermanRieslings())
	dir := t.TempDir()

	path := filepath.Join(dir, "out.csv")
	require.NoError(t, writeExport(path, "csv", cs))
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	wines, err := export.ReadCSV(f)
	require.NoError(t, err)
	assert.Equal(t, dataset.GermanRieslings(), wines)

	assert.Error(t, writeExport(filepath.Join(dir, "out.pdf"), "pdf", cs))
}

func TestRootCommandExport(t *testing.T) {
	out := filepath.Join(t.TempDir(), "mosel.csv")

	cmd := newRootCmd()
	cmd.SetArgs([]string{"export", "--province", "Mosel", "--out", out, "--log-level", "off"})
	require.NoError(t, cmd.ExecuteContext(context.Background()))

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	wines, err := export.ReadCSV(f)
	require.NoError(t, err)
	assert.Len(t, wines, 9)
}
