package store

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/shmooz/shmooz-go/internal/model"
)

// testDB creates a temporary test database.
func testDB(t *testing.T) (*sql.DB, func()) {
	t.Helper()

	// Create temp file for test database
	f, err := os.CreateTemp("", "shmooz-test-*.db")
	if err != nil {
		t.Fatalf("creating temp file: %v", err)
	}
	dbPath := f.Name()
	f.Close()

	// Open database
	db, err := NewDB(dbPath)
	if err != nil {
		os.Remove(dbPath)
		t.Fatalf("NewDB: %v", err)
	}

	// Run migrations
	if err := Migrate(db); err != nil {
		db.Close()
		os.Remove(dbPath)
		t.Fatalf("Migrate: %v", err)
	}

	// Return cleanup function
	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}

	return db, cleanup
}

func TestCreateSlug(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	s, err := q.CreateSlug(ctx, "alice", time.Now())
	if err != nil {
		t.Fatalf("CreateSlug: %v", err)
	}
	if s.ID == 0 {
		t.Error("slug.ID should not be 0")
	}
	if s.Slug != "alice" {
		t.Errorf("Slug = %q, want %q", s.Slug, "alice")
	}

	// Duplicate slug must violate the unique constraint
	if _, err := q.CreateSlug(ctx, "alice", time.Now()); err == nil {
		t.Error("expected unique constraint error for duplicate slug")
	}
}

func TestGetSlugByName_NotFound(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	_, err := q.GetSlugByName(ctx, "nobody")
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("expected sql.ErrNoRows, got %v", err)
	}
}

func TestUpsertPage_UniquePerOwnerCategory(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)
	now := time.Now()

	first, err := q.UpsertPage(ctx, UpsertPageParams{
		Owner:    "alice",
		Category: model.PageCategoryOne,
		Content:  `[{"id":"b1"}]`,
		Now:      now,
	})
	if err != nil {
		t.Fatalf("UpsertPage: %v", err)
	}

	// Writing the same (owner, category) replaces content, keeps the row
	second, err := q.UpsertPage(ctx, UpsertPageParams{
		Owner:    "alice",
		Category: model.PageCategoryOne,
		Content:  `[{"id":"b2"}]`,
		Now:      now.Add(time.Second),
	})
	if err != nil {
		t.Fatalf("UpsertPage (replace): %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("replacement changed row id: %d -> %d", first.ID, second.ID)
	}
	if second.Content != `[{"id":"b2"}]` {
		t.Errorf("Content = %q, want replaced content", second.Content)
	}

	got, err := q.GetPage(ctx, "alice", model.PageCategoryOne)
	if err != nil {
		t.Fatalf("GetPage: %v", err)
	}
	if got.Content != `[{"id":"b2"}]` {
		t.Errorf("stored content = %q, want %q", got.Content, `[{"id":"b2"}]`)
	}
}

func TestListPageCategoriesByOwner(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)
	now := time.Now()

	for _, category := range []string{model.PageCategoryOne, model.PageCategoryTwo, "project_7"} {
		if _, err := q.UpsertPage(ctx, UpsertPageParams{
			Owner:    "alice",
			Category: category,
			Content:  "[]",
			Now:      now,
		}); err != nil {
			t.Fatalf("UpsertPage(%s): %v", category, err)
		}
	}

	categories, err := q.ListPageCategoriesByOwner(ctx, "alice")
	if err != nil {
		t.Fatalf("ListPageCategoriesByOwner: %v", err)
	}
	if len(categories) != 3 {
		t.Fatalf("got %d categories, want 3", len(categories))
	}
}

func TestOwnerCascadeUpdates(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)
	now := time.Now()

	if _, err := q.CreateSlug(ctx, "old-name", now); err != nil {
		t.Fatalf("CreateSlug: %v", err)
	}
	if _, err := q.CreateDeck(ctx, CreateDeckParams{
		Title: "Work", Owner: "old-name", CreatedAt: now, UpdatedAt: now,
	}); err != nil {
		t.Fatalf("CreateDeck: %v", err)
	}
	if _, err := q.CreateProjectCard(ctx, CreateProjectCardParams{
		Title: "P1", Owner: "old-name", DeckTitle: "Work", CreatedAt: now, UpdatedAt: now,
	}); err != nil {
		t.Fatalf("CreateProjectCard: %v", err)
	}
	if _, err := q.CreateBackground(ctx, CreateBackgroundParams{
		Owner: "old-name", CreatedAt: now, UpdatedAt: now,
	}); err != nil {
		t.Fatalf("CreateBackground: %v", err)
	}
	if _, err := q.UpsertPage(ctx, UpsertPageParams{
		Owner: "old-name", Category: model.PageCategoryOne, Content: "[]", Now: now,
	}); err != nil {
		t.Fatalf("UpsertPage: %v", err)
	}

	later := now.Add(time.Minute)
	if n, err := q.UpdateDeckOwner(ctx, "old-name", "new-name", later); err != nil || n != 1 {
		t.Fatalf("UpdateDeckOwner: n=%d err=%v", n, err)
	}
	if n, err := q.UpdateProjectCardOwner(ctx, "old-name", "new-name", later); err != nil || n != 1 {
		t.Fatalf("UpdateProjectCardOwner: n=%d err=%v", n, err)
	}
	if n, err := q.UpdateBackgroundOwner(ctx, "old-name", "new-name", later); err != nil || n != 1 {
		t.Fatalf("UpdateBackgroundOwner: n=%d err=%v", n, err)
	}
	if n, err := q.UpdatePageOwner(ctx, "old-name", "new-name", later); err != nil || n != 1 {
		t.Fatalf("UpdatePageOwner: n=%d err=%v", n, err)
	}

	// Nothing should remain under the old owner
	decks, err := q.ListDecksByOwner(ctx, "old-name")
	if err != nil {
		t.Fatalf("ListDecksByOwner: %v", err)
	}
	if len(decks) != 0 {
		t.Errorf("old owner still has %d decks", len(decks))
	}
	if _, err := q.GetBackgroundByOwner(ctx, "new-name"); err != nil {
		t.Errorf("GetBackgroundByOwner(new-name): %v", err)
	}
}

func TestInTx_HooksRunAfterCommit(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	var ran bool

	err := InTx(ctx, db, func(q *Queries, h *Hooks) error {
		if _, err := q.CreateSlug(ctx, "hooked", time.Now()); err != nil {
			return err
		}
		h.OnCommit(func(context.Context) { ran = true })
		if ran {
			t.Error("hook ran before commit")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("InTx: %v", err)
	}
	if !ran {
		t.Error("hook did not run after commit")
	}
}

func TestInTx_RollbackDiscardsHooksAndWrites(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	var ran bool
	sentinel := errors.New("boom")

	err := InTx(ctx, db, func(q *Queries, h *Hooks) error {
		if _, err := q.CreateSlug(ctx, "ghost", time.Now()); err != nil {
			return err
		}
		h.OnCommit(func(context.Context) { ran = true })
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("InTx returned %v, want sentinel", err)
	}
	if ran {
		t.Error("hook ran despite rollback")
	}

	exists, err := New(db).SlugExists(ctx, "ghost")
	if err != nil {
		t.Fatalf("SlugExists: %v", err)
	}
	if exists {
		t.Error("rolled-back slug is visible")
	}
}
