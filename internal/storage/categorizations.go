package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Veraticus/work-order-flow/internal/model"
)

type storedPair struct {
	Label     string `json:"label"`
	Locations string `json:"locations"`
}

type storedCaveat struct {
	Kind     string `json:"kind"`
	Original string `json:"original"`
	Label    string `json:"label"`
}

// SaveCategorization stores the categorization of a work order, replacing any
// previous one.
func (s *SQLiteStorage) SaveCategorization(ctx context.Context, c *model.Categorization) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateCategorization(c); err != nil {
		return err
	}
	if c.CategorizedAt.IsZero() {
		c.CategorizedAt = time.Now()
	}

	pairs := make([]storedPair, 0, len(c.Entries))
	for _, e := range c.Entries {
		pairs = append(pairs, storedPair{Label: e.Label, Locations: e.Locations})
	}
	entriesJSON, err := json.Marshal(pairs)
	if err != nil {
		return fmt.Errorf("failed to marshal entries: %w", err)
	}

	caveats := make([]storedCaveat, 0, len(c.Caveats))
	for _, cv := range c.Caveats {
		caveats = append(caveats, storedCaveat{Kind: string(cv.Kind), Original: cv.Original, Label: cv.Label})
	}
	caveatsJSON, err := json.Marshal(caveats)
	if err != nil {
		return fmt.Errorf("failed to marshal caveats: %w", err)
	}

	var exists bool
	if err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM work_orders WHERE id = ?)`, c.WorkOrderID,
	).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check work order: %w", err)
	}
	if !exists {
		return notFound("work order", c.WorkOrderID)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO categorizations (
			work_order_id, profile, text, entries, caveats, categorized_at
		) VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(work_order_id) DO UPDATE SET
			profile = excluded.profile,
			text = excluded.text,
			entries = excluded.entries,
			caveats = excluded.caveats,
			categorized_at = excluded.categorized_at
	`,
		c.WorkOrderID,
		c.Profile,
		c.Text,
		string(entriesJSON),
		string(caveatsJSON),
		c.CategorizedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to save categorization: %w", err)
	}
	return nil
}

// GetCategorization returns the categorization of a work order.
func (s *SQLiteStorage) GetCategorization(ctx context.Context, workOrderID string) (*model.Categorization, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(workOrderID, "workOrderID"); err != nil {
		return nil, err
	}

	var (
		c                        model.Categorization
		entriesJSON, caveatsJSON string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT work_order_id, profile, text, entries, caveats, categorized_at
		FROM categorizations
		WHERE work_order_id = ?
	`, workOrderID).Scan(&c.WorkOrderID, &c.Profile, &c.Text, &entriesJSON, &caveatsJSON, &c.CategorizedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("categorization", workOrderID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get categorization: %w", err)
	}
	c.CategorizedAt = c.CategorizedAt.UTC()

	var pairs []storedPair
	if err := json.Unmarshal([]byte(entriesJSON), &pairs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal entries: %w", err)
	}
	for _, p := range pairs {
		c.Entries = append(c.Entries, model.CategoryPair{Label: p.Label, Locations: p.Locations})
	}

	var caveats []storedCaveat
	if err := json.Unmarshal([]byte(caveatsJSON), &caveats); err != nil {
		return nil, fmt.Errorf("failed to unmarshal caveats: %w", err)
	}
	for _, cv := range caveats {
		c.Caveats = append(c.Caveats, model.Caveat{Kind: model.CaveatKind(cv.Kind), Original: cv.Original, Label: cv.Label})
	}

	return &c, nil
}
