package logic

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func TestStoreError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"record not found", gorm.ErrRecordNotFound, ErrNotFound},
		{"pg serialization", &pgconn.PgError{Code: "40001"}, errSerialization},
		{"pg deadlock", fmt.Errorf("exec: %w", &pgconn.PgError{Code: "40P01"}), errSerialization},
		{"pg other", &pgconn.PgError{Code: "23505"}, ErrStoreUnavailable},
		{"sqlite busy", errors.New("database is locked (5) (SQLITE_BUSY)"), errSerialization},
		{"generic", errors.New("connection refused"), ErrStoreUnavailable},
		{"already classified", fmt.Errorf("%w: funding request 1", ErrRequestClosed), ErrRequestClosed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := storeError("op", tt.err)
			if !errors.Is(got, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}

	if storeError("op", nil) != nil {
		t.Fatalf("nil error should stay nil")
	}
}

func TestIsRetryable(t *testing.T) {
	if !IsRetryable(fmt.Errorf("%w: x", ErrConflict)) {
		t.Fatalf("conflict should be retryable")
	}
	if IsRetryable(fmt.Errorf("%w: x", ErrInvalidInput)) {
		t.Fatalf("invalid input should not be retryable")
	}
}
