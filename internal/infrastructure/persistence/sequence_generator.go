package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/shared"
	"gorm.io/gorm"
)

// nextSequenceSQL bumps the (prefix, day) counter in one statement. Concurrent callers
// serialize on the counter row, so no two of them receive the same value.
const nextSequenceSQL = `INSERT INTO document_sequences (prefix, seq_date, last_value)
VALUES (?, ?, 1)
ON CONFLICT (prefix, seq_date) DO UPDATE SET last_value = document_sequences.last_value + 1
RETURNING last_value`

// GormSequenceGenerator implements SequenceGenerator over the document_sequences table
type GormSequenceGenerator struct {
	db *gorm.DB
}

// NewGormSequenceGenerator creates a new GormSequenceGenerator
func NewGormSequenceGenerator(db *gorm.DB) *GormSequenceGenerator {
	return &GormSequenceGenerator{db: db}
}

// Next returns the next number for prefix on day, starting at 1
func (g *GormSequenceGenerator) Next(ctx context.Context, prefix string, day time.Time) (int64, error) {
	var value int64
	if err := g.db.WithContext(ctx).Raw(nextSequenceSQL, prefix, day.Format("2006-01-02")).Scan(&value).Error; err != nil {
		return 0, fmt.Errorf("failed to advance %s sequence: %w", prefix, err)
	}
	if value < 1 {
		return 0, fmt.Errorf("sequence %s returned %d", prefix, value)
	}
	return value, nil
}

// Ensure GormSequenceGenerator implements SequenceGenerator
var _ shared.SequenceGenerator = (*GormSequenceGenerator)(nil)
