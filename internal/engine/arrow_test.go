package engine

import (
	"bytes"
	"testing"

	"github.com/apache/arrow/go/v18/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordColumns(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	cs := sampleStore()
	rec := cs.Record(mem)
	defer rec.Release()

	assert.EqualValues(t, 15, rec.NumRows())
	assert.EqualValues(t, 5, rec.NumCols())
	assert.Equal(t, "designation", rec.ColumnName(4))
}

func TestArrowRoundTrip(t *testing.T) {
	cs := sampleStore()

	var buf bytes.Buffer
	require.NoError(t, cs.WriteArrow(&buf))

	wines, err := ReadArrow(&buf)
	require.NoError(t, err)
	assert.Equal(t, cs.Wines(), wines)
}
