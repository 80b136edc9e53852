package postgres

import (
	"database/sql"
	"fmt"
	"testing"

	"github.com/lib/pq"
)

func TestIsNotFound(t *testing.T) {
	if !isNotFound(fmt.Errorf("get pick: %w", sql.ErrNoRows)) {
		t.Fatalf("expected wrapped sql.ErrNoRows to be not found")
	}
	if isNotFound(fakeErr("pq: relation picks does not exist")) {
		t.Fatalf("expected unrelated error to be ignored")
	}
}

func TestIsUniqueViolation(t *testing.T) {
	t.Run("matches pq error code", func(t *testing.T) {
		err := fmt.Errorf("insert: %w", &pq.Error{Code: "23505", Message: "duplicate key value"})
		if !isUniqueViolation(err) {
			t.Fatalf("expected true for 23505")
		}
	})

	t.Run("matches by message code", func(t *testing.T) {
		err := fakeErr("pq: duplicate key value violates unique constraint (23505)")
		if !isUniqueViolation(err) {
			t.Fatalf("expected true for 23505 message")
		}
	})

	t.Run("ignores unrelated error", func(t *testing.T) {
		if isUniqueViolation(&pq.Error{Code: "40P01"}) {
			t.Fatalf("expected false for deadlock")
		}
	})
}

func TestNullIntRoundTrip(t *testing.T) {
	if got := nullIntToPtr(sql.NullInt64{}); got != nil {
		t.Fatalf("expected nil for null, got %d", *got)
	}

	v := -2
	got := nullIntToPtr(ptrToNullInt(&v))
	if got == nil || *got != -2 {
		t.Fatalf("unexpected round trip value: %v", got)
	}
	if ptrToNullInt(nil).Valid {
		t.Fatalf("expected nil pointer to map to null")
	}
}

func TestStringToNull(t *testing.T) {
	if stringToNull("  ").Valid {
		t.Fatalf("expected blank string to be null")
	}
	if got := stringToNull("win"); !got.Valid || got.String != "win" {
		t.Fatalf("unexpected value: %+v", got)
	}
}

type fakeErr string

func (e fakeErr) Error() string { return string(e) }
