package export

import (
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"winedash/internal/models"
)

const SheetName = "wines"

// WriteXLSX writes wines as a single-sheet workbook with the CSV columns.
func WriteXLSX(w io.Writer, wines []models.Wine) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return err
	}

	header := make([]interface{}, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return err
	}

	for i, wine := range wines {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []interface{}{wine.Points, wine.Price, wine.Province, wine.Variety, wine.Designation}
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return fmt.Errorf("row %d: %w", i+2, err)
		}
	}

	_, err := f.WriteTo(w)
	return err
}

// ReadXLSX reads a workbook written by WriteXLSX.
func ReadXLSX(r io.Reader) ([]models.Wine, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: empty sheet", ErrBadHeader)
	}

	wines := make([]models.Wine, 0, len(rows)-1)
	for i, rec := range rows[1:] {
		if len(rec) != len(Header) {
			return nil, fmt.Errorf("row %d: got %d cells, want %d", i+2, len(rec), len(Header))
		}
		points, err := strconv.Atoi(rec[0])
		if err != nil {
			return nil, fmt.Errorf("row %d: points: %w", i+2, err)
		}
		price, err := strconv.ParseFloat(rec[1], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: price: %w", i+2, err)
		}
		wines = append(wines, models.Wine{Points: points, Price: price, Province: rec[2], Variety: rec[3], Designation: rec[4]})
	}
	return wines, nil
}
