package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mmorckos/sudoku/pkg/grid"
)

func testRecord(id string, created time.Time) *Record {
	in := grid.New(9)
	in[0][0] = 5
	sol := grid.New(9)
	for i := range sol {
		for j := range sol[i] {
			sol[i][j] = (i*3+i/3+j)%9 + 1
		}
	}
	return &Record{
		ID:         id,
		Size:       9,
		Technique:  "dlx",
		Input:      in,
		Solution:   sol,
		Solved:     true,
		DurationMs: 3,
		CreatedAt:  created,
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close(ctx)

	rec := testRecord("abc-123", time.Now().UTC().Truncate(time.Second))
	if err := s.Save(ctx, rec); err != nil {
		t.Fatal(err)
	}

	got, err := s.Load(ctx, "abc-123")
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != rec.ID || got.Technique != rec.Technique || !got.Solved {
		t.Errorf("loaded record mismatch: %+v", got)
	}
	if !got.Input.Equal(rec.Input) || !got.Solution.Equal(rec.Solution) {
		t.Error("grids did not survive the round trip")
	}
	if !got.CreatedAt.Equal(rec.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, rec.CreatedAt)
	}
}

func TestFileStoreLoadMissing(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Load(ctx, "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestFileStoreSaveInvalid(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Save(ctx, nil); err == nil {
		t.Error("nil record accepted")
	}
	if err := s.Save(ctx, &Record{}); err == nil {
		t.Error("record without ID accepted")
	}
}

func TestFileStoreListNewestFirst(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	base := time.Now().UTC()
	for i, id := range []string{"old", "mid", "new"} {
		if err := s.Save(ctx, testRecord(id, base.Add(time.Duration(i)*time.Minute))); err != nil {
			t.Fatal(err)
		}
	}

	metas, err := s.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(metas) != 3 {
		t.Fatalf("List returned %d records, want 3", len(metas))
	}
	want := []string{"new", "mid", "old"}
	for i, m := range metas {
		if m.ID != want[i] {
			t.Errorf("metas[%d].ID = %q, want %q", i, m.ID, want[i])
		}
	}
}

func TestFileStoreListSkipsMalformed(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Save(ctx, testRecord("good", time.Now())); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "junk.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("ignore"), 0o644); err != nil {
		t.Fatal(err)
	}

	metas, err := s.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(metas) != 1 || metas[0].ID != "good" {
		t.Errorf("List = %v, want only the valid record", metas)
	}
}
