// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store implements the Postgres-backed category and company
// repository consumed by the grouping engine.
package store

import (
	"context"
	"database/sql"
	"fmt"

	"growthdesk/internal/models"
)

// CategoryStore manages the Client/Program/Cohort hierarchy in the database.
type CategoryStore struct {
	db *sql.DB
}

// NewCategoryStore returns a new CategoryStore.
func NewCategoryStore(db *sql.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

const categoryColumns = `id, name, description, type, parent_id, created_at, updated_at`

// scanCategory scans a row into a Category struct.
func scanCategory(scanner interface{ Scan(...any) error }) (*models.Category, error) {
	var c models.Category
	err := scanner.Scan(
		&c.ID, &c.Name, &c.Description, &c.Type,
		&c.ParentID, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns all categories of one type, ordered by name.
func (s *CategoryStore) List(ctx context.Context, ctype models.CategoryType) ([]models.Category, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+categoryColumns+`
		FROM categories
		WHERE type = $1
		ORDER BY name, id
	`, ctype)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	return collectCategories(rows)
}

// ListChildren returns the direct children of a category, optionally
// restricted to one type (empty means any).
func (s *CategoryStore) ListChildren(ctx context.Context, parentID int64, ctype models.CategoryType) ([]models.Category, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+categoryColumns+`
		FROM categories
		WHERE parent_id = $1 AND ($2 = '' OR type = $2)
		ORDER BY name, id
	`, parentID, string(ctype))
	if err != nil {
		return nil, fmt.Errorf("list children: %w", err)
	}
	defer rows.Close()

	return collectCategories(rows)
}

func collectCategories(rows *sql.Rows) ([]models.Category, error) {
	var items []models.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		items = append(items, *c)
	}
	return items, rows.Err()
}

// FindByID retrieves a category by ID. Returns nil if not found.
func (s *CategoryStore) FindByID(ctx context.Context, id int64) (*models.Category, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id)
	c, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category by id: %w", err)
	}
	return c, nil
}

// Ensure returns the category with the given type, parent, and name,
// creating it if it does not exist yet. The parent must be one level up:
// programs under clients, cohorts under programs, clients at the root.
func (s *CategoryStore) Ensure(ctx context.Context, ctype models.CategoryType, parentID *int64, name, description string) (*models.Category, error) {
	if !ctype.Valid() {
		return nil, fmt.Errorf("ensure category: unknown type %q", ctype)
	}
	if name == "" {
		return nil, fmt.Errorf("ensure category: name is required")
	}

	want, needsParent := ctype.ParentType()
	if needsParent {
		if parentID == nil {
			return nil, fmt.Errorf("ensure category: a %s requires a %s parent", ctype, want)
		}
		parent, err := s.FindByID(ctx, *parentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, fmt.Errorf("ensure category: parent %d not found", *parentID)
		}
		if parent.Type != want {
			return nil, fmt.Errorf("ensure category: a %s requires a %s parent, got %s", ctype, want, parent.Type)
		}
	} else if parentID != nil {
		return nil, fmt.Errorf("ensure category: a client is a root and takes no parent")
	}

	row := s.db.QueryRowContext(ctx, `
		INSERT INTO categories (name, description, type, parent_id)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT ON CONSTRAINT categories_unique_per_parent
		DO UPDATE SET name = EXCLUDED.name
		RETURNING `+categoryColumns,
		name, description, ctype, parentID,
	)
	c, err := scanCategory(row)
	if err != nil {
		return nil, fmt.Errorf("ensure category: %w", err)
	}
	return c, nil
}

// Statistics computes the display counts for one category: descendant
// programs and cohorts, plus the companies reachable through descendant
// cohorts broken down by membership status. A company attached to several
// cohorts under the node is counted once; when its memberships disagree
// on status, one bucket is picked deterministically so the breakdown
// never exceeds the total.
func (s *CategoryStore) Statistics(ctx context.Context, id int64) (models.CategoryStatistics, error) {
	var stats models.CategoryStatistics

	err := s.db.QueryRowContext(ctx, `
		WITH RECURSIVE subtree AS (
			SELECT id, type FROM categories WHERE id = $1
			UNION ALL
			SELECT c.id, c.type
			FROM categories c
			JOIN subtree s ON c.parent_id = s.id
		),
		members AS (
			SELECT cc.company_id, MAX(cc.status) AS status
			FROM cohort_companies cc
			JOIN subtree s ON s.id = cc.cohort_id AND s.type = 'cohort'
			GROUP BY cc.company_id
		)
		SELECT
			(SELECT COUNT(*) FROM subtree WHERE type = 'program' AND id <> $1),
			(SELECT COUNT(*) FROM subtree WHERE type = 'cohort' AND id <> $1),
			(SELECT COUNT(*) FROM members),
			(SELECT COUNT(*) FROM members WHERE status = 'active'),
			(SELECT COUNT(*) FROM members WHERE status = 'completed'),
			(SELECT COUNT(*) FROM members WHERE status = 'withdrawn')
	`, id).Scan(
		&stats.ProgramsCount, &stats.CohortsCount, &stats.CompaniesCount,
		&stats.ActiveCompanies, &stats.CompletedCompanies, &stats.WithdrawnCompanies,
	)
	if err != nil {
		return models.CategoryStatistics{}, fmt.Errorf("category statistics: %w", err)
	}
	return stats, nil
}

// Breadcrumb returns the ancestor chain of a category ordered root first,
// with Depth set to the position in the trail. Fails if the category does
// not exist.
func (s *CategoryStore) Breadcrumb(ctx context.Context, id int64) ([]models.BreadcrumbEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		WITH RECURSIVE chain AS (
			SELECT id, name, type, parent_id, 0 AS ascent
			FROM categories WHERE id = $1
			UNION ALL
			SELECT c.id, c.name, c.type, c.parent_id, chain.ascent + 1
			FROM categories c
			JOIN chain ON chain.parent_id = c.id
		)
		SELECT id, name, type FROM chain ORDER BY ascent DESC
	`, id)
	if err != nil {
		return nil, fmt.Errorf("breadcrumb: %w", err)
	}
	defer rows.Close()

	var trail []models.BreadcrumbEntry
	for rows.Next() {
		var e models.BreadcrumbEntry
		if err := rows.Scan(&e.ID, &e.Name, &e.Type); err != nil {
			return nil, fmt.Errorf("scan breadcrumb: %w", err)
		}
		e.Depth = len(trail)
		trail = append(trail, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("breadcrumb: %w", err)
	}
	if len(trail) == 0 {
		return nil, fmt.Errorf("breadcrumb: category %d not found", id)
	}
	return trail, nil
}

// Delete removes a category by ID. Descendants and memberships go with it
// (ON DELETE CASCADE).
func (s *CategoryStore) Delete(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}
