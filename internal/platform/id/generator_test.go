package id

import (
	"strings"
	"testing"
)

func TestRandomGenerator_NewID(t *testing.T) {
	t.Parallel()

	gen := NewRandomGenerator(PrefixIngestionRun)
	first, err := gen.NewID()
	if err != nil {
		t.Fatalf("new id: %v", err)
	}
	second, err := gen.NewID()
	if err != nil {
		t.Fatalf("new id: %v", err)
	}

	if !strings.HasPrefix(first, "ingest-") {
		t.Fatalf("expected ingest prefix, got %q", first)
	}
	if len(first) != len("ingest-")+32 {
		t.Fatalf("unexpected id length: %d", len(first))
	}
	if first == second {
		t.Fatalf("expected distinct ids, got %q twice", first)
	}
}

func TestRandomGenerator_NoPrefix(t *testing.T) {
	t.Parallel()

	got, err := NewRandomGenerator(" ").NewID()
	if err != nil {
		t.Fatalf("new id: %v", err)
	}
	if len(got) != 32 || strings.Contains(got, "-") {
		t.Fatalf("unexpected unprefixed id: %q", got)
	}
}
