package shared

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainError_Kinds(t *testing.T) {
	t.Run("validation errors are classified", func(t *testing.T) {
		err := NewValidationError("INVALID_QUANTITY", "quantity %s must be positive", "-1")
		assert.True(t, IsValidation(err))
		assert.False(t, IsConflict(err))
		assert.Equal(t, "quantity -1 must be positive", err.Error())
	})

	t.Run("not found errors name the resource", func(t *testing.T) {
		err := NewNotFoundError("warehouse", "W1")
		assert.True(t, IsNotFound(err))
		assert.Equal(t, "warehouse W1 not found", err.Message)
		assert.Equal(t, "warehouse", err.Details["resource"])
	})

	t.Run("wrapped errors keep their kind", func(t *testing.T) {
		err := fmt.Errorf("approve: %w", NewConflictError("INVALID_STATE_TRANSITION", "already approved"))
		assert.True(t, IsConflict(err))
		assert.True(t, errors.Is(err, ErrInvalidStateTransition))
	})

	t.Run("plain errors are internal", func(t *testing.T) {
		assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
	})
}

func TestDomainError_WithDetailDoesNotMutateSentinel(t *testing.T) {
	err := ErrInsufficientStock.WithDetail("requested", "60")
	assert.Equal(t, "60", err.Details["requested"])
	assert.Nil(t, ErrInsufficientStock.Details)
	assert.True(t, errors.Is(err, ErrInsufficientStock))
}

func TestFilter_Normalize(t *testing.T) {
	f := Filter{Page: 0, PageSize: 1000, OrderDir: "sideways"}.Normalize()
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, 200, f.PageSize)
	assert.Equal(t, "desc", f.OrderDir)
	assert.Equal(t, 0, f.Offset())

	p := NewPaginated([]int{1, 2}, 41, 1, 20)
	assert.Equal(t, 3, p.TotalPages)
}
