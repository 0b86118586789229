package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"winedash/internal/dataset"
	"winedash/internal/models"
)

func sampleStore() *ColumnStore {
	return NewColumnStore(dataset.GermanRieslings())
}

func contains(xs []string, s string) bool {
	for _, x := range xs {
		if x == s {
			return true
		}
	}
	return false
}

func TestFilterPredicate(t *testing.T) {
	cs := sampleStore()
	selections := []models.Selection{
		{Provinces: []string{"Mosel"}, Designations: []string{"Kabinett", "Spatlese"}},
		{Provinces: []string{"Rheingau", "Ahr"}, Designations: []string{"Trocken"}},
		{Provinces: []string{"Nahe", "Unknown"}, Designations: cs.AllSelected().Designations},
		{Provinces: cs.AllSelected().Provinces, Designations: []string{"Estate", "Auslese"}},
	}

	for _, sel := range selections {
		got := Filter(cs, sel).Wines()

		var want []models.Wine
		for _, w := range cs.Wines() {
			if contains(sel.Provinces, w.Province) && contains(sel.Designations, w.Designation) {
				want = append(want, w)
			}
		}
		if len(want) == 0 {
			assert.Empty(t, got, "%+v", sel)
			continue
		}
		assert.Equal(t, want, got, "%+v", sel)
	}
}

func TestFilterIdentity(t *testing.T) {
	cs := sampleStore()
	sub := Filter(cs, cs.AllSelected())
	assert.Equal(t, cs.Wines(), sub.Wines())
}

func TestFilterEmptySelection(t *testing.T) {
	cs := sampleStore()
	all := cs.AllSelected()

	assert.Zero(t, Filter(cs, models.Selection{Designations: all.Designations}).Len())
	assert.Zero(t, Filter(cs, models.Selection{Provinces: all.Provinces}).Len())
	assert.Zero(t, Filter(cs, models.Selection{Provinces: []string{}, Designations: []string{}}).Len())
}

func TestFilterMosel(t *testing.T) {
	cs := sampleStore()
	sub := Filter(cs, models.Selection{Provinces: []string{"Mosel"}, Designations: cs.AllSelected().Designations})
	assert.Equal(t, 9, sub.Len())

	provinces, err := sub.Distinct(Province)
	assert.NoError(t, err)
	assert.Equal(t, []string{"Mosel"}, provinces)
}

func TestFilterOptions(t *testing.T) {
	opts := sampleStore().FilterOptions()
	assert.Equal(t, []string{"Mosel", "Rheinhessen", "Wurttemberg", "Ahr", "Rheingau", "Nahe"}, opts.Provinces)
	assert.Equal(t, []string{"Kabinett", "Trocken", "Lemberger", "Estate", "Spatlese", "Auslese"}, opts.Designations)
}

func TestDistinctUnknownField(t *testing.T) {
	_, err := sampleStore().Distinct(Price)
	assert.ErrorIs(t, err, ErrUnknownField)
}
