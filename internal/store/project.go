// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"encoding/json"
	"fmt"

	"folioadmin/internal/models"
	"folioadmin/internal/restapi"
)

// projectRow is the backend shape of the projects table. Optional links are
// nullable columns; tags is a JSON array column that older rows may hold in
// some other shape.
type projectRow struct {
	ID          int64           `json:"id,omitempty"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	ImageURL    string          `json:"image_url"`
	Tags        json.RawMessage `json:"tags"`
	DemoURL     *string         `json:"demo_url"`
	RepoURL     *string         `json:"repo_url"`
	IsFeatured  bool            `json:"is_featured"`
}

func projectToRow(p models.Project) projectRow {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	raw, _ := json.Marshal(tags)
	return projectRow{
		Title:       p.Title,
		Description: p.Description,
		ImageURL:    p.ImageURL,
		Tags:        raw,
		DemoURL:     nullable(p.DemoURL),
		RepoURL:     nullable(p.RepoURL),
		IsFeatured:  p.IsFeatured,
	}
}

func projectFromRow(r projectRow) models.Project {
	return models.Project{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		ImageURL:    r.ImageURL,
		Tags:        coerceTags(r.Tags),
		DemoURL:     deref(r.DemoURL),
		RepoURL:     deref(r.RepoURL),
		IsFeatured:  r.IsFeatured,
	}
}

// coerceTags turns the tags column into a string list. A non-array value
// becomes an empty list; array elements that are not strings are printed.
func coerceTags(raw json.RawMessage) []string {
	tags := []string{}
	var elems []any
	if len(raw) == 0 || json.Unmarshal(raw, &elems) != nil {
		return tags
	}
	for _, e := range elems {
		switch v := e.(type) {
		case nil:
		case string:
			tags = append(tags, v)
		default:
			tags = append(tags, fmt.Sprint(v))
		}
	}
	return tags
}

// nullable maps "" to a JSON null.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// ProjectStore manages portfolio projects.
type ProjectStore struct {
	client *restapi.Client
}

// NewProjectStore creates a ProjectStore.
func NewProjectStore(client *restapi.Client) *ProjectStore {
	return &ProjectStore{client: client}
}

// List returns all projects ordered by id.
func (s *ProjectStore) List(ctx context.Context) ([]models.Project, error) {
	q := restapi.NewQuery(tableProjects).Order("id", restapi.Asc)
	return list(ctx, s.client, q, projectFromRow)
}

// Add creates a project and returns it with its new id.
func (s *ProjectStore) Add(ctx context.Context, p models.Project) (*models.Project, error) {
	row, err := insert[projectRow](ctx, s.client, tableProjects, projectToRow(p))
	if err != nil {
		return nil, err
	}
	return mapCreated(row, projectFromRow), nil
}

// Update overwrites the project with the given id.
func (s *ProjectStore) Update(ctx context.Context, id int64, p models.Project) error {
	return patch(ctx, s.client, tableProjects, id, projectToRow(p))
}

// Delete removes a project.
func (s *ProjectStore) Delete(ctx context.Context, id int64) error {
	return remove(ctx, s.client, tableProjects, id)
}
