package engine

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/labstack/gommon/log"

	"winedash/internal/export"
	"winedash/internal/models"
)

var ErrInvalidRecord = errors.New("invalid wine record")

// Points are scored on a 100 point scale.
const (
	minPoints = 0
	maxPoints = 100
)

// Source supplies the wine table. It is read once at start-up.
type Source interface {
	Load(ctx context.Context) ([]models.Wine, error)
}

// StaticSource serves an in-memory table.
type StaticSource []models.Wine

func (s StaticSource) Load(context.Context) ([]models.Wine, error) {
	out := make([]models.Wine, len(s))
	copy(out, s)
	return out, nil
}

// CSVSource reads a file in the export CSV format.
type CSVSource struct {
	Path string
}

func (s CSVSource) Load(ctx context.Context) ([]models.Wine, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	wines, err := export.ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Path, err)
	}
	return wines, nil
}

func validate(i int, w models.Wine) error {
	switch {
	case w.Province == "":
		return fmt.Errorf("%w: row %d: empty province", ErrInvalidRecord, i)
	case w.Variety == "":
		return fmt.Errorf("%w: row %d: empty variety", ErrInvalidRecord, i)
	case w.Designation == "":
		return fmt.Errorf("%w: row %d: empty designation", ErrInvalidRecord, i)
	case !(w.Price > 0) || math.IsInf(w.Price, 0):
		return fmt.Errorf("%w: row %d: price %v is not a positive finite number", ErrInvalidRecord, i, w.Price)
	case w.Points < minPoints || w.Points > maxPoints:
		return fmt.Errorf("%w: row %d: points %d outside %d..%d", ErrInvalidRecord, i, w.Points, minPoints, maxPoints)
	}
	return nil
}

// LoadColumnar reads src, validates every row and builds the store.
func LoadColumnar(ctx context.Context, src Source) (*ColumnStore, error) {
	start := time.Now()
	log.Debugf("Loading wines from %T", src)

	wines, err := src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load wines: %w", err)
	}
	for i, w := range wines {
		if err := validate(i, w); err != nil {
			return nil, err
		}
	}

	store := NewColumnStore(wines)
	log.Infof("Load Complete. Rows: %d. Provinces: %d. Designations: %d. Time: %v",
		store.Len(), len(store.ProvinceDict), len(store.DesignationDict), time.Since(start))
	return store, nil
}
