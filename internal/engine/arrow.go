package engine

import (
	"fmt"
	"io"

	"github.com/apache/arrow/go/v18/arrow"
	"github.com/apache/arrow/go/v18/arrow/array"
	"github.com/apache/arrow/go/v18/arrow/ipc"
	"github.com/apache/arrow/go/v18/arrow/memory"

	"winedash/internal/models"
)

var arrowSchema = arrow.NewSchema([]arrow.Field{
	{Name: string(Points), Type: arrow.PrimitiveTypes.Int32},
	{Name: string(Price), Type: arrow.PrimitiveTypes.Float64},
	{Name: string(Province), Type: arrow.BinaryTypes.String},
	{Name: string(Variety), Type: arrow.BinaryTypes.String},
	{Name: string(Designation), Type: arrow.BinaryTypes.String},
}, nil)

func appendDecoded(b *array.StringBuilder, ids []int32, dict []string) {
	b.Reserve(len(ids))
	for _, id := range ids {
		b.Append(dict[id])
	}
}

// Record copies the store into a single Arrow record. Callers must Release it.
func (cs *ColumnStore) Record(mem memory.Allocator) arrow.Record {
	b := array.NewRecordBuilder(mem, arrowSchema)
	defer b.Release()

	b.Field(0).(*array.Int32Builder).AppendValues(cs.Points, nil)
	b.Field(1).(*array.Float64Builder).AppendValues(cs.Prices, nil)
	appendDecoded(b.Field(2).(*array.StringBuilder), cs.ProvinceIDs, cs.ProvinceDict)
	appendDecoded(b.Field(3).(*array.StringBuilder), cs.VarietyIDs, cs.VarietyDict)
	appendDecoded(b.Field(4).(*array.StringBuilder), cs.DesignationIDs, cs.DesignationDict)

	return b.NewRecord()
}

// WriteArrow streams the store as Arrow IPC.
func (cs *ColumnStore) WriteArrow(w io.Writer) error {
	mem := memory.NewGoAllocator()
	rec := cs.Record(mem)
	defer rec.Release()

	wr := ipc.NewWriter(w, ipc.WithSchema(arrowSchema), ipc.WithAllocator(mem))
	if err := wr.Write(rec); err != nil {
		wr.Close()
		return fmt.Errorf("arrow write: %w", err)
	}
	return wr.Close()
}

// ReadArrow decodes an IPC stream written by WriteArrow.
func ReadArrow(r io.Reader) ([]models.Wine, error) {
	rdr, err := ipc.NewReader(r, ipc.WithSchema(arrowSchema))
	if err != nil {
		return nil, err
	}
	defer rdr.Release()

	var wines []models.Wine
	for rdr.Next() {
		rec := rdr.Record()
		pts := rec.Column(0).(*array.Int32)
		prices := rec.Column(1).(*array.Float64)
		provs := rec.Column(2).(*array.String)
		vars := rec.Column(3).(*array.String)
		des := rec.Column(4).(*array.String)
		for i := 0; i < int(rec.NumRows()); i++ {
			wines = append(wines, models.Wine{
				Points:      int(pts.Value(i)),
				Price:       prices.Value(i),
				Province:    provs.Value(i),
				Variety:     vars.Value(i),
				Designation: des.Value(i),
			})
		}
	}
	return wines, rdr.Err()
}
