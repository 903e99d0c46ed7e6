// ABOUTME: Tests for the immutable AuthorVectorStore
// ABOUTME: Verifies ordering, validation and defensive copies
package core

import (
	"errors"
	"reflect"
	"testing"

	"github.com/harper/poetsim/internal/models"
)

func TestNewStore_PreservesOrder(t *testing.T) {
	store := mustStore(t, av("王维", 1, 0), av("李白", 0, 1), av("杜甫", 1, 1))

	want := []string{"王维", "李白", "杜甫"}
	if got := store.Authors(); !reflect.DeepEqual(got, want) {
		t.Errorf("Authors() = %v, want %v", got, want)
	}
	if store.Len() != 3 {
		t.Errorf("Len() = %d, want 3", store.Len())
	}
	if store.Dimension() != 2 {
		t.Errorf("Dimension() = %d, want 2", store.Dimension())
	}
	if !store.Contains("李白") || store.Contains("苏轼") {
		t.Error("Contains() reported wrong membership")
	}
}

func TestNewStore_RejectsDuplicates(t *testing.T) {
	_, err := NewStore([]models.AuthorVector{av("A", 1), av("A", 2)})
	if !errors.Is(err, ErrDuplicateAuthor) {
		t.Fatalf("error = %v, want ErrDuplicateAuthor", err)
	}
}

func TestNewStore_RejectsMixedDimensions(t *testing.T) {
	_, err := NewStore([]models.AuthorVector{av("A", 1, 0), av("B", 1, 0, 0)})
	if !errors.Is(err, ErrDimensionMismatch) {
		t.Fatalf("error = %v, want ErrDimensionMismatch", err)
	}
}

func TestStore_IsImmutable(t *testing.T) {
	input := []models.AuthorVector{av("A", 1, 0), av("B", 0, 1)}
	store := mustStore(t, input...)

	input[0].Vector[0] = 99

	got, _ := store.Get("A")
	if got.Vector[0] != 1 {
		t.Errorf("store changed after input mutation: %v", got.Vector)
	}

	got.Vector[1] = 42
	again, _ := store.Get("A")
	if again.Vector[1] != 0 {
		t.Errorf("store changed after result mutation: %v", again.Vector)
	}

	all := store.Vectors()
	all[1].Vector[0] = 7
	b, _ := store.Get("B")
	if b.Vector[0] != 0 {
		t.Errorf("store changed after Vectors() mutation: %v", b.Vector)
	}
}

func TestNewStore_Empty(t *testing.T) {
	store := mustStore(t)
	if store.Len() != 0 || store.Dimension() != 0 {
		t.Errorf("empty store Len=%d Dimension=%d, want 0 0", store.Len(), store.Dimension())
	}
	if _, ok := store.Get("A"); ok {
		t.Error("Get() on empty store should report missing")
	}
}
