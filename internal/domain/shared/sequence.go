package shared

import (
	"context"
	"fmt"
	"time"
)

// MaxDailySequence is the largest per-day sequence a document code can carry
const MaxDailySequence = 9999

// SequenceGenerator hands out monotonically increasing numbers scoped by (prefix, day).
// Implementations must be safe under concurrent callers; scanning existing codes is not.
type SequenceGenerator interface {
	Next(ctx context.Context, prefix string, day time.Time) (int64, error)
}

// FormatDocumentCode renders <PREFIX><YYMMDD><4-digit seq>, e.g. PX2410180007
func FormatDocumentCode(prefix string, day time.Time, seq int64) (string, error) {
	if seq < 1 {
		return "", NewValidationError("INVALID_SEQUENCE", "sequence must start at 1, got %d", seq)
	}
	if seq > MaxDailySequence {
		return "", NewConflictError("SEQUENCE_EXHAUSTED", "daily sequence for %s on %s is exhausted", prefix, day.Format("2006-01-02"))
	}
	return fmt.Sprintf("%s%s%04d", prefix, day.Format("060102"), seq), nil
}

// NextDocumentCode draws the next sequence for prefix on day and formats it
func NextDocumentCode(ctx context.Context, gen SequenceGenerator, prefix string, day time.Time) (string, error) {
	seq, err := gen.Next(ctx, prefix, day)
	if err != nil {
		return "", fmt.Errorf("next %s sequence: %w", prefix, err)
	}
	return FormatDocumentCode(prefix, day, seq)
}
