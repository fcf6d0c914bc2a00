package cache

import (
	"context"
	"fmt"
)

// Key helpers for the portfolio read cache. Per-owner keys embed the
// slug so a rename or content change can drop them precisely.

// SlugsKey caches the full slug list.
const SlugsKey = "slugs"

// DeckKey caches the decks of one owner.
func DeckKey(slug string) string {
	return "deck:" + slug
}

// ProjectsKey caches the project cards of one deck.
func ProjectsKey(slug, deckTitle string) string {
	return fmt.Sprintf("projects:%s:%s", slug, deckTitle)
}

// BackgroundKey caches the background of one owner.
func BackgroundKey(slug string) string {
	return "background:" + slug
}

// PageKey caches one fixed page.
func PageKey(slug, category string) string {
	return fmt.Sprintf("page:%s:%s", slug, category)
}

// ProjectPageKey caches the page of one project card.
func ProjectPageKey(cardID int64) string {
	return fmt.Sprintf("project_page:%d", cardID)
}

// DropOwner removes every cached entry of one owner. Project pages are
// keyed by card id, not slug, so callers drop those separately.
func DropOwner(ctx context.Context, c Cacher, slug string) {
	_ = c.Delete(ctx, SlugsKey)
	_ = c.Delete(ctx, DeckKey(slug))
	_ = c.Delete(ctx, BackgroundKey(slug))

	if pd, ok := c.(PrefixDeleter); ok {
		_ = pd.DeleteByPrefix(ctx, "page:"+slug+":")
		_ = pd.DeleteByPrefix(ctx, "projects:"+slug+":")
	}
}
