package engine

import (
	"winedash/internal/models"
)

// allowedIDs marks which dictionary ids are selected.
func allowedIDs(dict []string, selected []string) []bool {
	want := make(map[string]struct{}, len(selected))
	for _, s := range selected {
		want[s] = struct{}{}
	}
	mask := make([]bool, len(dict))
	for id, s := range dict {
		_, mask[id] = want[s]
	}
	return mask
}

// Filter returns the rows whose province and designation are both selected.
// An empty list in either dimension selects no rows. Row order is kept.
func Filter(cs *ColumnStore, sel models.Selection) *ColumnStore {
	provOK := allowedIDs(cs.ProvinceDict, sel.Provinces)
	desOK := allowedIDs(cs.DesignationDict, sel.Designations)

	out := &ColumnStore{
		ProvinceDict:    cs.ProvinceDict,
		VarietyDict:     cs.VarietyDict,
		DesignationDict: cs.DesignationDict,
	}
	for i := 0; i < cs.Len(); i++ {
		if !provOK[cs.ProvinceIDs[i]] || !desOK[cs.DesignationIDs[i]] {
			continue
		}
		out.Points = append(out.Points, cs.Points[i])
		out.Prices = append(out.Prices, cs.Prices[i])
		out.ProvinceIDs = append(out.ProvinceIDs, cs.ProvinceIDs[i])
		out.VarietyIDs = append(out.VarietyIDs, cs.VarietyIDs[i])
		out.DesignationIDs = append(out.DesignationIDs, cs.DesignationIDs[i])
	}
	return out
}
