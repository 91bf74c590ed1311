// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package hierarchy

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"growthdesk/internal/models"
)

// StatsAggregator annotates sibling categories with display statistics by
// fanning out one repository request per category.
type StatsAggregator struct {
	repo Repository
}

// NewStatsAggregator creates an aggregator over the given repository.
func NewStatsAggregator(repo Repository) *StatsAggregator {
	return &StatsAggregator{repo: repo}
}

// Annotate returns a copy of categories with Stats populated, in the same
// order as the input. All statistics requests run concurrently; a request
// that fails is replaced by an empty record so a single unreachable node
// never blanks out its siblings. Annotate waits for every request before
// returning and issues none at all for an empty input.
func (a *StatsAggregator) Annotate(ctx context.Context, categories []models.Category) []models.Category {
	if len(categories) == 0 {
		return []models.Category{}
	}

	out := make([]models.Category, len(categories))
	copy(out, categories)

	var g errgroup.Group
	for i := range out {
		i := i
		g.Go(func() error {
			stats, err := a.repo.GetStatistics(ctx, out[i].ID)
			if err != nil {
				slog.Warn("category statistics unavailable",
					"category_id", out[i].ID,
					"error", err,
				)
				stats = models.CategoryStatistics{}
			}
			out[i].Stats = &stats
			return nil
		})
	}

	// Every task caught its own failure, so Wait is only a join point.
	_ = g.Wait()

	return out
}
