package engine

import (
	"errors"
	"fmt"

	"winedash/internal/models"
)

// Field names a column of the store.
type Field string

const (
	Points      Field = "points"
	Price       Field = "price"
	Province    Field = "province"
	Variety     Field = "variety"
	Designation Field = "designation"
)

var ErrUnknownField = errors.New("unknown field")

// ColumnStore holds the wine table in Struct-of-Arrays format.
// Subsets produced by Filter share the dictionaries of their parent.
// A store is never mutated after construction.
type ColumnStore struct {
	// Data Columns
	Points []int32
	Prices []float64

	// Dictionary Encoded IDs (0..N)
	ProvinceIDs    []int32
	VarietyIDs     []int32
	DesignationIDs []int32

	// Dictionaries (ID -> String), in order of first appearance
	ProvinceDict    []string
	VarietyDict     []string
	DesignationDict []string
}

type dictEncoder struct {
	ids  map[string]int32
	list []string
}

func newDictEncoder() *dictEncoder {
	return &dictEncoder{ids: make(map[string]int32)}
}

func (d *dictEncoder) encode(s string) int32 {
	if id, ok := d.ids[s]; ok {
		return id
	}
	id := int32(len(d.list))
	d.list = append(d.list, s)
	d.ids[s] = id
	return id
}

// NewColumnStore dictionary-encodes wines into a ColumnStore.
func NewColumnStore(wines []models.Wine) *ColumnStore {
	n := len(wines)
	cs := &ColumnStore{
		Points:         make([]int32, n),
		Prices:         make([]float64, n),
		ProvinceIDs:    make([]int32, n),
		VarietyIDs:     make([]int32, n),
		DesignationIDs: make([]int32, n),
	}
	pDict, vDict, dDict := newDictEncoder(), newDictEncoder(), newDictEncoder()
	for i, w := range wines {
		cs.Points[i] = int32(w.Points)
		cs.Prices[i] = w.Price
		cs.ProvinceIDs[i] = pDict.encode(w.Province)
		cs.VarietyIDs[i] = vDict.encode(w.Variety)
		cs.DesignationIDs[i] = dDict.encode(w.Designation)
	}
	cs.ProvinceDict = pDict.list
	cs.VarietyDict = vDict.list
	cs.DesignationDict = dDict.list
	return cs
}

func (cs *ColumnStore) Len() int { return len(cs.Prices) }

// Wine materializes row i.
func (cs *ColumnStore) Wine(i int) models.Wine {
	return models.Wine{
		Points:      int(cs.Points[i]),
		Price:       cs.Prices[i],
		Province:    cs.ProvinceDict[cs.ProvinceIDs[i]],
		Variety:     cs.VarietyDict[cs.VarietyIDs[i]],
		Designation: cs.DesignationDict[cs.DesignationIDs[i]],
	}
}

func (cs *ColumnStore) Wines() []models.Wine {
	out := make([]models.Wine, cs.Len())
	for i := range out {
		out[i] = cs.Wine(i)
	}
	return out
}

// dimension returns the id column and dictionary of a categorical field.
func (cs *ColumnStore) dimension(f Field) ([]int32, []string, error) {
	switch f {
	case Province:
		return cs.ProvinceIDs, cs.ProvinceDict, nil
	case Variety:
		return cs.VarietyIDs, cs.VarietyDict, nil
	case Designation:
		return cs.DesignationIDs, cs.DesignationDict, nil
	}
	return nil, nil, fmt.Errorf("%w: %q is not a categorical field", ErrUnknownField, f)
}

// measure returns a numeric column as float64.
func (cs *ColumnStore) measure(f Field) ([]float64, error) {
	switch f {
	case Price:
		return cs.Prices, nil
	case Points:
		return toFloats(cs.Points), nil
	}
	return nil, fmt.Errorf("%w: %q is not a numeric field", ErrUnknownField, f)
}

// Distinct returns the values of a categorical field present in the store,
// in order of first appearance.
func (cs *ColumnStore) Distinct(f Field) ([]string, error) {
	ids, dict, err := cs.dimension(f)
	if err != nil {
		return nil, err
	}
	seen := make([]bool, len(dict))
	out := make([]string, 0, len(dict))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, dict[id])
		}
	}
	return out, nil
}

// FilterOptions lists the choices for the filter controls.
func (cs *ColumnStore) FilterOptions() models.FilterOptions {
	provinces, _ := cs.Distinct(Province)
	designations, _ := cs.Distinct(Designation)
	return models.FilterOptions{Provinces: provinces, Designations: designations}
}

// AllSelected is the default selection: every province and designation.
func (cs *ColumnStore) AllSelected() models.Selection {
	opts := cs.FilterOptions()
	return models.Selection{Provinces: opts.Provinces, Designations: opts.Designations}
}
