package id

import (
	"testing"

	"github.com/google/uuid"
)

func TestUUIDGenerator_NewID(t *testing.T) {
	t.Parallel()

	gen := NewUUIDGenerator()
	first, err := gen.NewID()
	if err != nil {
		t.Fatalf("new id: %v", err)
	}
	second, err := gen.NewID()
	if err != nil {
		t.Fatalf("new id: %v", err)
	}
	if first == second {
		t.Fatalf("expected distinct ids, got %s twice", first)
	}
	if _, err := uuid.Parse(first); err != nil {
		t.Fatalf("id is not a uuid: %s", first)
	}
}

func TestSequence_NewID(t *testing.T) {
	t.Parallel()

	seq := &Sequence{Prefix: "run"}
	got, _ := seq.NewID()
	if got != "run-1" {
		t.Fatalf("unexpected first id: %s", got)
	}
	got, _ = seq.NewID()
	if got != "run-2" {
		t.Fatalf("unexpected second id: %s", got)
	}
}
