package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"winedash/internal/models"
)

// Header is the column order of every tabular export.
var Header = []string{"points", "price", "province", "variety", "designation"}

var ErrBadHeader = errors.New("unexpected csv header")

func row(w models.Wine) []string {
	return []string{
		strconv.Itoa(w.Points),
		strconv.FormatFloat(w.Price, 'f', -1, 64),
		w.Province,
		w.Variety,
		w.Designation,
	}
}

// WriteCSV writes wines with a header row. Fields are quoted only when they
// contain the delimiter, a quote or a line break.
func WriteCSV(w io.Writer, wines []models.Wine) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, wine := range wines {
		if err := cw.Write(row(wine)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV parses the output of WriteCSV.
func ReadCSV(r io.Reader) ([]models.Wine, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(Header)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	for i, h := range header {
		if strings.TrimSpace(strings.ToLower(h)) != Header[i] {
			return nil, fmt.Errorf("%w: column %d is %q, want %q", ErrBadHeader, i, h, Header[i])
		}
	}

	var wines []models.Wine
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		points, err := strconv.Atoi(strings.TrimSpace(rec[0]))
		if err != nil {
			return nil, fmt.Errorf("line %d: points: %w", line, err)
		}
		price, err := strconv.ParseFloat(strings.TrimSpace(rec[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: price: %w", line, err)
		}
		wines = append(wines, models.Wine{
			Points:      points,
			Price:       price,
			Province:    rec[2],
			Variety:     rec[3],
			Designation: rec[4],
		})
	}
	return wines, nil
}
