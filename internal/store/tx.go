// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"fmt"
)

// Hooks collects callbacks that run only after a successful commit.
// Cache invalidation registers here so a rolled-back transaction never
// notifies downstream consumers.
type Hooks struct {
	fns []func(context.Context)
}

// OnCommit registers fn to run after the enclosing transaction commits.
func (h *Hooks) OnCommit(fn func(context.Context)) {
	h.fns = append(h.fns, fn)
}

func (h *Hooks) run(ctx context.Context) {
	for _, fn := range h.fns {
		fn(ctx)
	}
}

// InTx runs fn inside a transaction. Hook callbacks registered by fn run
// after the commit succeeds, in registration order; on rollback they are
// discarded.
func InTx(ctx context.Context, db *sql.DB, fn func(q *Queries, h *Hooks) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	h := &Hooks{}
	if err := fn(New(tx), h); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	h.run(ctx)
	return nil
}
