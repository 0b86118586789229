package models

import (
	"fmt"
	"math"

	"github.com/goccy/go-json"
)

// Wine is one row of the ratings table.
type Wine struct {
	Points      int     `json:"points"`
	Price       float64 `json:"price"`
	Province    string  `json:"province"`
	Variety     string  `json:"variety"`
	Designation string  `json:"designation"`
}

// Selection is the set of provinces and designations chosen in the filter
// controls. An empty slice selects nothing.
type Selection struct {
	Provinces    []string `json:"provinces"`
	Designations []string `json:"designations"`
}

// Stat is a statistic that may be undefined, e.g. a standard deviation over a
// single record. Undefined values encode as JSON null.
type Stat struct {
	Value float64
	Valid bool
}

// Defined wraps v; NaN and infinities are Undefined.
func Defined(v float64) Stat {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Undefined
	}
	return Stat{Value: v, Valid: true}
}

// Undefined is the "not enough data" value.
var Undefined = Stat{}

func (s Stat) String() string {
	if !s.Valid {
		return "not enough data"
	}
	return fmt.Sprintf("%.2f", s.Value)
}

func (s Stat) MarshalJSON() ([]byte, error) {
	if !s.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(s.Value)
}

func (s *Stat) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*s = Undefined
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*s = Defined(v)
	return nil
}

// GroupMean is one bar of an "average X by Y" chart.
type GroupMean struct {
	Key   string  `json:"key"`
	Mean  float64 `json:"mean"`
	Count int     `json:"count"`
}

type GroupValues struct {
	Key    string    `json:"key"`
	Values []float64 `json:"values"`
}

type MeasureStats struct {
	Mean  Stat `json:"mean"`
	Std   Stat `json:"std"`
	Count int  `json:"count,omitempty"`
}

// DesignationStat mirrors one row of the designation table:
// price mean/std/count and points mean/std.
type DesignationStat struct {
	Designation string       `json:"designation"`
	Price       MeasureStats `json:"price"`
	Points      MeasureStats `json:"points"`
}

type DashboardData struct {
	Count               int               `json:"count"`
	Correlation         Stat              `json:"correlation"`
	AvgPriceByProvince  []GroupMean       `json:"avg_price_by_province"`
	AvgPointsByProvince []GroupMean       `json:"avg_points_by_province"`
	Designations        []DesignationStat `json:"designations"`
}

type FilterOptions struct {
	Provinces    []string `json:"provinces"`
	Designations []string `json:"designations"`
}
