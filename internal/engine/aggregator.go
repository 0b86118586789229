package engine

import (
	"sort"

	"winedash/internal/models"
)

// groupIndex buckets row indices by dictionary id.
// order lists the ids in order of first appearance in the rows.
type groupIndex struct {
	rows  [][]int
	order []int32
	dict  []string
}

func (cs *ColumnStore) groupBy(f Field) (*groupIndex, error) {
	ids, dict, err := cs.dimension(f)
	if err != nil {
		return nil, err
	}
	g := &groupIndex{rows: make([][]int, len(dict)), dict: dict}
	for i, id := range ids {
		if g.rows[id] == nil {
			g.order = append(g.order, id)
		}
		g.rows[id] = append(g.rows[id], i)
	}
	return g, nil
}

func pick(values []float64, rows []int) []float64 {
	out := make([]float64, len(rows))
	for k, i := range rows {
		out[k] = values[i]
	}
	return out
}

// GroupMeans averages valueField per distinct groupField value.
// Groups are sorted by descending mean; equal means keep the order in which
// their key first appears in cs.
func GroupMeans(cs *ColumnStore, groupField, valueField Field) ([]models.GroupMean, error) {
	values, err := cs.measure(valueField)
	if err != nil {
		return nil, err
	}
	g, err := cs.groupBy(groupField)
	if err != nil {
		return nil, err
	}

	out := make([]models.GroupMean, 0, len(g.order))
	for _, id := range g.order {
		rows := g.rows[id]
		out = append(out, models.GroupMean{
			Key:   g.dict[id],
			Mean:  mean(pick(values, rows)).Value,
			Count: len(rows),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Mean > out[j].Mean })
	return out, nil
}

// GroupValues returns the raw valueField values of each group, groups in
// first-appearance order.
func GroupValues(cs *ColumnStore, groupField, valueField Field) ([]models.GroupValues, error) {
	values, err := cs.measure(valueField)
	if err != nil {
		return nil, err
	}
	g, err := cs.groupBy(groupField)
	if err != nil {
		return nil, err
	}
	out := make([]models.GroupValues, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, models.GroupValues{Key: g.dict[id], Values: pick(values, g.rows[id])})
	}
	return out, nil
}

// DesignationStats summarizes price and points per designation, sorted by
// designation name. Standard deviations of single-row groups are undefined.
func DesignationStats(cs *ColumnStore) []models.DesignationStat {
	g, _ := cs.groupBy(Designation)
	points := toFloats(cs.Points)

	out := make([]models.DesignationStat, 0, len(g.order))
	for _, id := range g.order {
		rows := g.rows[id]
		prices, pts := pick(cs.Prices, rows), pick(points, rows)
		out = append(out, models.DesignationStat{
			Designation: g.dict[id],
			Price:       models.MeasureStats{Mean: mean(prices), Std: sampleStd(prices), Count: len(rows)},
			Points:      models.MeasureStats{Mean: mean(pts), Std: sampleStd(pts)},
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Designation < out[j].Designation })
	return out
}

// Aggregate computes everything one dashboard render needs from a subset.
func (cs *ColumnStore) Aggregate() *models.DashboardData {
	avgPrice, _ := GroupMeans(cs, Province, Price)
	avgPoints, _ := GroupMeans(cs, Province, Points)
	return &models.DashboardData{
		Count:               cs.Len(),
		Correlation:         Correlation(cs),
		AvgPriceByProvince:  avgPrice,
		AvgPointsByProvince: avgPoints,
		Designations:        DesignationStats(cs),
	}
}
