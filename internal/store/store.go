// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store holds the resource accessors for every kind of portfolio
// content. Each store translates between the backend's row shape
// (snake_case columns, foreign keys) and the domain types in models, and
// issues its calls through restapi. Stores keep no state between calls.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"folioadmin/internal/restapi"
)

// SingletonID is the fixed identity of the hero and about rows.
const SingletonID int64 = 1

// Backend table names.
const (
	tableHero            = "hero"
	tableAbout           = "about"
	tableSkillCategories = "skill_categories"
	tableSkills          = "skills"
	tableProjects        = "projects"
	tableTimeline        = "timeline_events"
	tableSocialLinks     = "social_links"
	tableServices        = "services"
	tableTestimonials    = "testimonials"
	tableContact         = "contact_submissions"
)

// list runs a GET and maps every returned row. The backend's order is kept.
func list[R, T any](ctx context.Context, c *restapi.Client, q *restapi.Query, fromRow func(R) T) ([]T, error) {
	raw, err := c.Do(ctx, http.MethodGet, q.String(), restapi.ReturnDefault, nil)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", q.Table(), err)
	}

	var rows []R
	if !restapi.IsNoData(raw) {
		if err := json.Unmarshal(raw, &rows); err != nil {
			return nil, fmt.Errorf("decode %s: %w", q.Table(), err)
		}
	}

	items := make([]T, 0, len(rows))
	for _, r := range rows {
		items = append(items, fromRow(r))
	}
	return items, nil
}

// getSingleton reads the single row of a singleton table. Returns nil when
// the table is still empty so the caller can fall back to its default.
func getSingleton[R any](ctx context.Context, c *restapi.Client, table string) (*R, error) {
	q := restapi.NewQuery(table).Limit(1)
	raw, err := c.Do(ctx, http.MethodGet, q.String(), restapi.ReturnDefault, nil)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", table, err)
	}
	if restapi.IsNoData(raw) {
		return nil, nil
	}

	var rows []R
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("decode %s: %w", table, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// updateSingleton patches the singleton row. It never inserts.
func updateSingleton(ctx context.Context, c *restapi.Client, table string, row any) error {
	q := restapi.NewQuery(table).EqID(SingletonID)
	if _, err := c.Do(ctx, http.MethodPatch, q.String(), restapi.ReturnMinimal, row); err != nil {
		return fmt.Errorf("update %s: %w", table, err)
	}
	return nil
}

// insert creates one row and returns the backend's representation of it,
// or nil when the backend returned no body.
func insert[R any](ctx context.Context, c *restapi.Client, table string, row any) (*R, error) {
	raw, err := c.Do(ctx, http.MethodPost, restapi.NewQuery(table).String(), restapi.ReturnRepresentation, row)
	if err != nil {
		return nil, fmt.Errorf("insert %s: %w", table, err)
	}
	if restapi.IsNoData(raw) {
		return nil, nil
	}

	// PostgREST answers with an array unless asked for a single object.
	var rows []R
	if err := json.Unmarshal(raw, &rows); err != nil {
		var one R
		if err := json.Unmarshal(raw, &one); err != nil {
			return nil, fmt.Errorf("decode created %s: %w", table, err)
		}
		return &one, nil
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// patch updates the row with the given id, discarding the response.
func patch(ctx context.Context, c *restapi.Client, table string, id int64, row any) error {
	q := restapi.NewQuery(table).EqID(id)
	if _, err := c.Do(ctx, http.MethodPatch, q.String(), restapi.ReturnMinimal, row); err != nil {
		return fmt.Errorf("update %s %d: %w", table, id, err)
	}
	return nil
}

// remove deletes the row with the given id.
func remove(ctx context.Context, c *restapi.Client, table string, id int64) error {
	q := restapi.NewQuery(table).EqID(id)
	if _, err := c.Do(ctx, http.MethodDelete, q.String(), restapi.ReturnMinimal, nil); err != nil {
		return fmt.Errorf("delete %s %d: %w", table, id, err)
	}
	return nil
}

// mapCreated applies fromRow to a created row, passing nil through.
func mapCreated[R, T any](row *R, fromRow func(R) T) *T {
	if row == nil {
		return nil
	}
	v := fromRow(*row)
	return &v
}
