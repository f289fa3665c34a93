package archive

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFSStoreLoadSeason(t *testing.T) {
	dir := t.TempDir()
	if err := NewWriter(dir).WriteSeason(sampleDocument(2023)); err != nil {
		t.Fatalf("write season: %v", err)
	}

	store := NewFSStore(dir)
	if !store.Has(2023) {
		t.Fatalf("expected season to be archived")
	}
	got, err := store.LoadSeason(2023)
	if err != nil {
		t.Fatalf("failed to load season: %v", err)
	}
	if len(got) != 2 || got[0].ID != "2023-10-24/BOS__NYK" {
		t.Fatalf("unexpected games: %+v", got)
	}

	m, err := store.Manifest()
	if err != nil || len(m.Seasons) != 1 {
		t.Fatalf("unexpected manifest %+v, err %v", m, err)
	}
}

func TestFSStoreErrors(t *testing.T) {
	store := NewFSStore(t.TempDir())
	if _, err := store.LoadSeason(1999); !errors.Is(err, ErrNotArchived) {
		t.Fatalf("expected ErrNotArchived, got %v", err)
	}
	if store.Has(1999) {
		t.Fatalf("expected missing season")
	}
	if m, err := store.Manifest(); err != nil || len(m.Seasons) != 0 {
		t.Fatalf("expected empty manifest without error, got %+v %v", m, err)
	}

	var nilStore *FSStore
	if _, err := nilStore.LoadSeason(2023); err == nil {
		t.Fatalf("expected error for nil store")
	}
	if nilStore.Has(2023) {
		t.Fatalf("nil store has nothing")
	}
}

func TestFSStoreDecodeError(t *testing.T) {
	dir := t.TempDir()
	path := SeasonPath(dir, 2023)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	if err := os.WriteFile(path, []byte("{bad json"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	if _, err := NewFSStore(dir).LoadSeason(2023); err == nil || errors.Is(err, ErrNotArchived) {
		t.Fatalf("expected decode error, got %v", err)
	}
}
