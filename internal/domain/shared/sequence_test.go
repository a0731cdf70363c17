package shared

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSequence map[string]int64

func (c countingSequence) Next(_ context.Context, prefix string, day time.Time) (int64, error) {
	key := prefix + day.Format("060102")
	c[key]++
	return c[key], nil
}

func TestFormatDocumentCode(t *testing.T) {
	day := time.Date(2024, 10, 18, 15, 0, 0, 0, time.UTC)

	code, err := FormatDocumentCode("PN", day, 7)
	require.NoError(t, err)
	assert.Equal(t, "PN2410180007", code)

	_, err = FormatDocumentCode("PN", day, 10000)
	assert.True(t, IsConflict(err))

	_, err = FormatDocumentCode("PN", day, 0)
	assert.True(t, IsValidation(err))
}

func TestNextDocumentCode_ScopesByPrefixAndDay(t *testing.T) {
	gen := countingSequence{}
	ctx := context.Background()
	d1 := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	d2 := d1.AddDate(0, 0, 1)

	first, _ := NextDocumentCode(ctx, gen, "PX", d1)
	second, _ := NextDocumentCode(ctx, gen, "PX", d1)
	otherPrefix, _ := NextDocumentCode(ctx, gen, "PN", d1)
	nextDay, _ := NextDocumentCode(ctx, gen, "PX", d2)

	assert.Equal(t, "PX2401020001", first)
	assert.Equal(t, "PX2401020002", second)
	assert.Equal(t, "PN2401020001", otherPrefix)
	assert.Equal(t, "PX2401030001", nextDay)
}
