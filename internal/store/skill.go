// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"folioadmin/internal/models"
	"folioadmin/internal/restapi"
)

// skillRow is the backend shape of the skills table.
type skillRow struct {
	ID         int64  `json:"id,omitempty"`
	Name       string `json:"name"`
	IsLearning bool   `json:"is_learning"`
	CategoryID int64  `json:"category_id"`
}

// categoryRow is a skill_categories row, optionally with its embedded
// skills when fetched with select=*,skills(*).
type categoryRow struct {
	ID     int64      `json:"id,omitempty"`
	Name   string     `json:"name"`
	Skills []skillRow `json:"skills,omitempty"`
}

// skillToRow never carries the id; it is assigned by the backend.
func skillToRow(s models.Skill) skillRow {
	return skillRow{Name: s.Name, IsLearning: s.IsLearning, CategoryID: s.CategoryID}
}

func skillFromRow(r skillRow) models.Skill {
	return models.Skill{ID: r.ID, Name: r.Name, IsLearning: r.IsLearning, CategoryID: r.CategoryID}
}

// categoryToRow sends the name only; skills have their own endpoint.
func categoryToRow(c models.SkillCategory) categoryRow {
	return categoryRow{Name: c.Name}
}

func categoryFromRow(r categoryRow) models.SkillCategory {
	skills := make([]models.Skill, 0, len(r.Skills))
	for _, s := range r.Skills {
		skills = append(skills, skillFromRow(s))
	}
	return models.SkillCategory{ID: r.ID, Name: r.Name, Skills: skills}
}

// SkillStore manages skill categories and the skills inside them.
type SkillStore struct {
	client *restapi.Client
}

// NewSkillStore creates a SkillStore.
func NewSkillStore(client *restapi.Client) *SkillStore {
	return &SkillStore{client: client}
}

// ListCategories returns every category with its skills already nested,
// in a single request.
func (s *SkillStore) ListCategories(ctx context.Context) ([]models.SkillCategory, error) {
	q := restapi.NewQuery(tableSkillCategories).Select("*,skills(*)")
	return list(ctx, s.client, q, categoryFromRow)
}

// AddCategory creates a category and returns it with its new id.
func (s *SkillStore) AddCategory(ctx context.Context, c models.SkillCategory) (*models.SkillCategory, error) {
	row, err := insert[categoryRow](ctx, s.client, tableSkillCategories, categoryToRow(c))
	if err != nil {
		return nil, err
	}
	return mapCreated(row, categoryFromRow), nil
}

// UpdateCategory renames a category.
func (s *SkillStore) UpdateCategory(ctx context.Context, id int64, c models.SkillCategory) error {
	return patch(ctx, s.client, tableSkillCategories, id, categoryToRow(c))
}

// DeleteCategory removes the category's skills and then the category.
// The child delete is a no-op when the backend already cascades.
func (s *SkillStore) DeleteCategory(ctx context.Context, id int64) error {
	q := restapi.NewQuery(tableSkills).Eq("category_id", strconv.FormatInt(id, 10))
	if _, err := s.client.Do(ctx, http.MethodDelete, q.String(), restapi.ReturnMinimal, nil); err != nil {
		return fmt.Errorf("delete skills of category %d: %w", id, err)
	}
	return remove(ctx, s.client, tableSkillCategories, id)
}

// AddSkill creates a skill inside skill.CategoryID.
func (s *SkillStore) AddSkill(ctx context.Context, skill models.Skill) (*models.Skill, error) {
	row, err := insert[skillRow](ctx, s.client, tableSkills, skillToRow(skill))
	if err != nil {
		return nil, err
	}
	return mapCreated(row, skillFromRow), nil
}

// UpdateSkill overwrites the skill with the given id.
func (s *SkillStore) UpdateSkill(ctx context.Context, id int64, skill models.Skill) error {
	return patch(ctx, s.client, tableSkills, id, skillToRow(skill))
}

// DeleteSkill removes a single skill.
func (s *SkillStore) DeleteSkill(ctx context.Context, id int64) error {
	return remove(ctx, s.client, tableSkills, id)
}
