package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"winedash/internal/models"
)

func TestGroupMeansMosel(t *testing.T) {
	cs := sampleStore()
	mosel := Filter(cs, models.Selection{Provinces: []string{"Mosel"}, Designations: cs.AllSelected().Designations})

	price, err := GroupMeans(mosel, Province, Price)
	require.NoError(t, err)
	require.Len(t, price, 1)
	assert.Equal(t, "Mosel", price[0].Key)
	assert.Equal(t, 9, price[0].Count)
	// 23+31+26+17+31+23+25+38+22
	assert.InDelta(t, 236.0/9, price[0].Mean, 1e-9)

	points, err := GroupMeans(mosel, Province, Points)
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.InDelta(t, 90.44, points[0].Mean, 0.005)
}

func TestGroupMeansOrder(t *testing.T) {
	cs := sampleStore()

	price, err := GroupMeans(cs, Province, Price)
	require.NoError(t, err)
	keys := make([]string, len(price))
	for i, g := range price {
		keys[i] = g.Key
	}
	assert.Equal(t, []string{"Ahr", "Rheinhessen", "Rheingau", "Mosel", "Wurttemberg", "Nahe"}, keys)

	// Ties on the mean keep first-appearance order:
	// Rheinhessen before Nahe (91), Wurttemberg before Ahr (90).
	points, err := GroupMeans(cs, Province, Points)
	require.NoError(t, err)
	keys = keys[:0]
	for _, g := range points {
		keys = append(keys, g.Key)
	}
	assert.Equal(t, []string{"Rheinhessen", "Nahe", "Rheingau", "Mosel", "Wurttemberg", "Ahr"}, keys)
}

func TestGroupMeansCoverage(t *testing.T) {
	cs := sampleStore()
	sub := Filter(cs, models.Selection{Provinces: []string{"Mosel", "Rheingau", "Nahe"}, Designations: []string{"Kabinett", "Spatlese"}})

	groups, err := GroupMeans(sub, Province, Price)
	require.NoError(t, err)

	sums := map[string]float64{}
	counts := map[string]int{}
	for _, w := range sub.Wines() {
		sums[w.Province] += w.Price
		counts[w.Province]++
	}
	require.Len(t, groups, len(counts))
	for _, g := range groups {
		require.Contains(t, counts, g.Key)
		assert.Equal(t, counts[g.Key], g.Count)
		assert.InDelta(t, sums[g.Key]/float64(counts[g.Key]), g.Mean, 1e-9)
	}
}

func TestGroupMeansUnknownField(t *testing.T) {
	cs := sampleStore()
	_, err := GroupMeans(cs, Price, Price)
	assert.ErrorIs(t, err, ErrUnknownField)
	_, err = GroupMeans(cs, Province, Province)
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestGroupMeansEmpty(t *testing.T) {
	groups, err := GroupMeans(Filter(sampleStore(), models.Selection{}), Province, Price)
	require.NoError(t, err)
	assert.Empty(t, groups)
}

func TestGroupValues(t *testing.T) {
	groups, err := GroupValues(sampleStore(), Province, Price)
	require.NoError(t, err)
	require.Len(t, groups, 6)
	assert.Equal(t, "Mosel", groups[0].Key)
	assert.Equal(t, []float64{23, 31, 26, 17, 31, 23, 25, 38, 22}, groups[0].Values)
	assert.Equal(t, models.GroupValues{Key: "Rheingau", Values: []float64{36, 25}}, groups[4])
}

func TestDesignationStats(t *testing.T) {
	stats := DesignationStats(sampleStore())

	names := make([]string, len(stats))
	byName := map[string]models.DesignationStat{}
	total := 0
	for i, s := range stats {
		names[i] = s.Designation
		byName[s.Designation] = s
		total += s.Price.Count
	}
	assert.Equal(t, []string{"Auslese", "Estate", "Kabinett", "Lemberger", "Spatlese", "Trocken"}, names)
	assert.Equal(t, 15, total)

	kab := byName["Kabinett"]
	assert.Equal(t, 7, kab.Price.Count)
	assert.InDelta(t, 181.0/7, kab.Price.Mean.Value, 1e-9)
	assert.True(t, kab.Price.Std.Valid)

	spat := byName["Spatlese"]
	assert.Equal(t, 2, spat.Price.Count)
	assert.InDelta(t, 23.0, spat.Price.Mean.Value, 1e-9)
	assert.InDelta(t, 2.828427, spat.Price.Std.Value, 1e-6)
	// Both Spatlese scored 91: zero spread is defined.
	assert.Equal(t, models.Defined(0), spat.Points.Std)
}

func TestDesignationStatsSingleRecord(t *testing.T) {
	cs := sampleStore()
	sub := Filter(cs, models.Selection{Provinces: cs.AllSelected().Provinces, Designations: []string{"Lemberger"}})
	require.Equal(t, 1, sub.Len())
	assert.Equal(t, models.Wine{Points: 90, Price: 25, Province: "Wurttemberg", Variety: "Riesling", Designation: "Lemberger"}, sub.Wine(0))

	stats := DesignationStats(sub)
	require.Len(t, stats, 1)
	s := stats[0]
	assert.Equal(t, 1, s.Price.Count)
	assert.Equal(t, models.Defined(25), s.Price.Mean)
	assert.Equal(t, models.Defined(90), s.Points.Mean)
	assert.False(t, s.Price.Std.Valid)
	assert.False(t, s.Points.Std.Valid)
}

func TestAggregate(t *testing.T) {
	cs := sampleStore()
	data := Filter(cs, models.Selection{Provinces: []string{"Mosel"}, Designations: cs.AllSelected().Designations}).Aggregate()

	assert.Equal(t, 9, data.Count)
	assert.True(t, data.Correlation.Valid)
	require.Len(t, data.AvgPriceByProvince, 1)
	require.Len(t, data.AvgPointsByProvince, 1)
	assert.Len(t, data.Designations, 4) // Auslese, Estate, Kabinett, Spatlese

	empty := Filter(cs, models.Selection{}).Aggregate()
	assert.Zero(t, empty.Count)
	assert.False(t, empty.Correlation.Valid)
	assert.Empty(t, empty.AvgPriceByProvince)
	assert.Empty(t, empty.Designations)
}
