package dataset

import "winedash/internal/models"

// FileName is the download name used for exports of the German sample.
const FileName = "german_wine_analysis"

var germanRieslings = []models.Wine{
	{Points: 91, Price: 23, Province: "Mosel", Variety: "Riesling", Designation: "Kabinett"},
	{Points: 91, Price: 39, Province: "Rheinhessen", Variety: "Riesling", Designation: "Trocken"},
	{Points: 90, Price: 25, Province: "Wurttemberg", Variety: "Riesling", Designation: "Lemberger"},
	{Points: 90, Price: 31, Province: "Mosel", Variety: "Riesling", Designation: "Kabinett"},
	{Points: 90, Price: 40, Province: "Ahr", Variety: "Riesling", Designation: "Trocken"},
	{Points: 89, Price: 26, Province: "Mosel", Variety: "Riesling", Designation: "Kabinett"},
	{Points: 90, Price: 17, Province: "Mosel", Variety: "Riesling", Designation: "Estate"},
	{Points: 90, Price: 31, Province: "Mosel", Variety: "Riesling", Designation: "Kabinett"},
	{Points: 90, Price: 36, Province: "Rheingau", Variety: "Riesling", Designation: "Trocken"},
	{Points: 91, Price: 23, Province: "Mosel", Variety: "Riesling", Designation: "Kabinett"},
	{Points: 91, Price: 25, Province: "Rheingau", Variety: "Riesling", Designation: "Kabinett"},
	{Points: 91, Price: 21, Province: "Nahe", Variety: "Riesling", Designation: "Spatlese"},
	{Points: 91, Price: 25, Province: "Mosel", Variety: "Riesling", Designation: "Spatlese"},
	{Points: 91, Price: 38, Province: "Mosel", Variety: "Riesling", Designation: "Auslese"},
	{Points: 91, Price: 22, Province: "Mosel", Variety: "Riesling", Designation: "Kabinett"},
}

// GermanRieslings returns a copy of the fixed 15-row sample.
func GermanRieslings() []models.Wine {
	out := make([]models.Wine, len(germanRieslings))
	copy(out, germanRieslings)
	return out
}
