// ABOUTME: Tests for run persistence in SQLite
// ABOUTME: Round trips author vectors and checks replacement, listing and clearing
package sqlite

import (
	"reflect"
	"testing"
	"time"

	"github.com/harper/poetsim/internal/models"
)

func newTestRunStore(t *testing.T) *RunStore {
	t.Helper()
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewRunStore(db)
}

func sampleRun(fingerprint string) *models.CachedRun {
	vectors := []models.AuthorVector{
		{Author: "王维", Vector: []float64{0.1, -2.5, 1e-300}, TokenCount: 10, OOVCount: 1},
		{Author: "李白", Vector: []float64{3, 0, 0.3333333333333333}, TokenCount: 7},
		{Author: "杜甫", Vector: []float64{-1, 1, 0}, TokenCount: 4, OOVCount: 2},
	}
	run := models.NewRun(fingerprint, models.MethodWord2Vec, 3, len(vectors))
	run.Skipped = []string{"无名氏"}
	return &models.CachedRun{Run: *run, Vectors: vectors}
}

func TestRunStore_RoundTrip(t *testing.T) {
	s := newTestRunStore(t)
	want := sampleRun("fp1")

	if err := s.Save(want); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := s.Load("fp1")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got == nil {
		t.Fatal("Load() returned nil")
	}

	if !reflect.DeepEqual(got.Vectors, want.Vectors) {
		t.Errorf("Vectors = %+v, want %+v", got.Vectors, want.Vectors)
	}
	if got.Run.RunID != want.Run.RunID || got.Run.Method != want.Run.Method || got.Run.Dimension != 3 {
		t.Errorf("Run = %+v, want %+v", got.Run, want.Run)
	}
	if !reflect.DeepEqual(got.Run.Skipped, []string{"无名氏"}) {
		t.Errorf("Skipped = %v, want [无名氏]", got.Run.Skipped)
	}
	if got.Run.CreatedAt.IsZero() {
		t.Error("CreatedAt should be restored")
	}
}

func TestRunStore_LoadMissing(t *testing.T) {
	s := newTestRunStore(t)

	got, err := s.Load("nope")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got != nil {
		t.Errorf("Load() = %+v, want nil", got)
	}
}

func TestRunStore_SaveReplaces(t *testing.T) {
	s := newTestRunStore(t)

	if err := s.Save(sampleRun("fp")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	replacement := &models.CachedRun{
		Run:     *models.NewRun("fp", models.MethodTFIDF, 2, 2),
		Vectors: []models.AuthorVector{{Author: "A", Vector: []float64{1, 0}}, {Author: "B", Vector: []float64{0, 1}}},
	}
	if err := s.Save(replacement); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := s.Load("fp")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.Run.Method != models.MethodTFIDF || len(got.Vectors) != 2 || got.Vectors[0].Author != "A" {
		t.Errorf("Load() = %+v, want replacement run", got)
	}
}

func TestRunStore_SaveRejectsBadDimension(t *testing.T) {
	s := newTestRunStore(t)
	run := sampleRun("fp")
	run.Vectors[1].Vector = []float64{1, 2}

	if err := s.Save(run); err == nil {
		t.Fatal("Save() should reject mismatched vector dimension")
	}
	if got, _ := s.Load("fp"); got != nil {
		t.Error("failed Save() should not leave a run behind")
	}
}

func TestRunStore_ListDeleteClear(t *testing.T) {
	s := newTestRunStore(t)

	older := sampleRun("old")
	older.Run.CreatedAt = time.Now().Add(-time.Hour)
	if err := s.Save(older); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := s.Save(sampleRun("new")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	runs, err := s.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(runs) != 2 || runs[0].Fingerprint != "new" {
		t.Errorf("List() = %+v, want newest first", runs)
	}

	if err := s.Delete("new"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM author_vectors WHERE fingerprint = 'new'").Scan(&n); err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Errorf("Delete() left %d vectors behind", n)
	}

	if err := s.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	runs, _ = s.List()
	if len(runs) != 0 {
		t.Errorf("List() after Clear = %+v, want empty", runs)
	}
}

func TestBlobRoundTrip(t *testing.T) {
	v := []float64{0, -0.5, 1.7976931348623157e308, 5e-324}
	if got := blobToVector(vectorToBlob(v)); !reflect.DeepEqual(got, v) {
		t.Errorf("blobToVector(vectorToBlob(%v)) = %v", v, got)
	}
}
