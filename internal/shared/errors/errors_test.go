package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestIsDuplicateError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"sqlite unique", fmt.Errorf("failed to save ticket: %w", fmt.Errorf("UNIQUE constraint failed: tickets.number")), true},
		{"mysql duplicate entry", fmt.Errorf("Error 1062: Duplicate entry '000123' for key 'number'"), true},
		{"postgres unique", fmt.Errorf("duplicate key value violates unique constraint"), true},
		{"gorm translated", fmt.Errorf("save: %w", gorm.ErrDuplicatedKey), true},
		{"other failure", fmt.Errorf("disk I/O error"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsDuplicateError(tt.err))
		})
	}
}

func TestBatchRolledBackError(t *testing.T) {
	err := NewBatchRolledBackError(http.StatusConflict, "import rolled back", "ticket 000123 already exists")

	assert.True(t, IsBatchRolledBackError(fmt.Errorf("wrapped: %w", err)))
	assert.False(t, IsValidationError(err))
	assert.Equal(t, http.StatusConflict, GetAppError(err).Code)
	assert.Equal(t, "batch_rolled_back: import rolled back (ticket 000123 already exists)", err.Error())
}

func TestAppErrorKinds(t *testing.T) {
	assert.True(t, IsNotFoundError(NewNotFoundError("ticket not found")))
	assert.True(t, IsConflictError(NewConflictError("duplicate item")))
	assert.True(t, IsValidationError(NewValidationError("price is required")))
	assert.False(t, IsAppError(fmt.Errorf("plain")))
	assert.Nil(t, GetAppError(fmt.Errorf("plain")))
}
