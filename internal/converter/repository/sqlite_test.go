package repository

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"dxf-service/internal/converter/models"
)

func newTestRepo(t *testing.T) *Repository {
	t.Helper()

	db, err := OpenSQLite(filepath.Join(t.TempDir(), "db", "drawings.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	repo := New(db)
	if err := repo.Init(context.Background()); err != nil {
		t.Fatalf("Init: %v", err)
	}
	return repo
}

func TestCreateAndGet(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	d := &models.StoredDrawing{
		Name:     "plan",
		Units:    "millimeters",
		Version:  "R2000",
		Entities: 3,
		Content:  []byte("0\nSECTION\n"),
		Source:   `{"operations":[]}`,
	}
	if err := repo.Create(ctx, d); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if d.ID == "" || d.CreatedAt == "" {
		t.Fatalf("Create did not fill id/created_at: %+v", d)
	}

	got, err := repo.GetByID(ctx, d.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Name != "plan" || got.Entities != 3 || got.Version != "R2000" || got.Source != d.Source {
		t.Errorf("GetByID = %+v", got)
	}
	if !bytes.Equal(got.Content, d.Content) || got.Size != len(d.Content) {
		t.Errorf("content = %q (size %d), want %q", got.Content, got.Size, d.Content)
	}
}

func TestListAndDelete(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("List() on empty db = %d items", len(list))
	}

	for _, name := range []string{"a", "b"} {
		if err := repo.Create(ctx, &models.StoredDrawing{Name: name, Content: []byte(name)}); err != nil {
			t.Fatalf("Create(%s): %v", name, err)
		}
	}

	list, err = repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("len(List()) = %d, want 2", len(list))
	}
	if list[0].Size != 1 || list[0].Content != nil {
		t.Errorf("List item = %+v, want size without content", list[0])
	}

	if err := repo.Delete(ctx, list[0].ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.GetByID(ctx, list[0].ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetByID after delete = %v, want ErrNotFound", err)
	}
}

func TestNotFound(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if _, err := repo.GetByID(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetByID = %v, want ErrNotFound", err)
	}
	if err := repo.Delete(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete = %v, want ErrNotFound", err)
	}
}

func TestInitIsRepeatable(t *testing.T) {
	repo := newTestRepo(t)
	if err := repo.Init(context.Background()); err != nil {
		t.Errorf("second Init: %v", err)
	}
	if err := repo.Ping(context.Background()); err != nil {
		t.Errorf("Ping: %v", err)
	}
}
