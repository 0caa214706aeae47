// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"folioadmin/internal/models"
	"folioadmin/internal/render"
	"folioadmin/internal/workspace"
)

// SkillsPage renders every category with its skills.
func (a *Admin) SkillsPage(w http.ResponseWriter, r *http.Request) {
	a.renderSkills(w, r, "", nil)
}

func (a *Admin) renderSkills(w http.ResponseWriter, r *http.Request, errMsg string, flashes []render.Flash) {
	snap, warn := a.snapshot(r)
	data := map[string]any{"Categories": snap.SkillCategories}
	if errMsg != "" {
		data["Error"] = errMsg
	}
	a.page(w, r, "skills", "Skills", "skills", data, append(warn, flashes...))
}

// skillsDone refreshes the skills kind and re-renders the page.
func (a *Admin) skillsDone(w http.ResponseWriter, r *http.Request, msg string) {
	pushURL(w, r, "/admin/skills")
	a.renderSkills(w, r, "", a.refresh(r, workspace.KindSkills, msg))
}

func (a *Admin) skillsFailed(w http.ResponseWriter, r *http.Request, action string, err error) {
	pushURL(w, r, "/admin/skills")
	a.renderSkills(w, r, "", []render.Flash{render.Error(failureMessage(action, err))})
}

// --- Categories ---

// CategoryCreate adds a skill category.
func (a *Admin) CategoryCreate(w http.ResponseWriter, r *http.Request) {
	cat := models.SkillCategory{Name: formValue(r, "name")}
	if msg := validateForm(cat); msg != "" {
		a.renderSkills(w, r, msg, nil)
		return
	}
	if _, err := a.content.Skills.AddCategory(r.Context(), cat); err != nil {
		slog.Error("category create failed", "error", err)
		a.skillsFailed(w, r, "Could not add the category", err)
		return
	}
	a.skillsDone(w, r, "Category added.")
}

// CategoryUpdate renames a skill category.
func (a *Admin) CategoryUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	cat := models.SkillCategory{ID: id, Name: formValue(r, "name")}
	if msg := validateForm(cat); msg != "" {
		a.renderSkills(w, r, msg, nil)
		return
	}
	if err := a.content.Skills.UpdateCategory(r.Context(), id, cat); err != nil {
		slog.Error("category update failed", "id", id, "error", err)
		a.skillsFailed(w, r, "Could not rename the category", err)
		return
	}
	a.skillsDone(w, r, "Category renamed.")
}

// CategoryDelete removes a category together with its skills.
func (a *Admin) CategoryDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	if err := a.content.Skills.DeleteCategory(r.Context(), id); err != nil {
		slog.Error("category delete failed", "id", id, "error", err)
		a.skillsFailed(w, r, "Could not delete the category", err)
		return
	}
	a.skillsDone(w, r, "Category deleted.")
}

// --- Skills ---

func skillFromForm(r *http.Request, id int64) models.Skill {
	categoryID, _ := strconv.ParseInt(formValue(r, "category_id"), 10, 64)
	return models.Skill{
		ID:         id,
		Name:       formValue(r, "name"),
		IsLearning: formBool(r, "is_learning"),
		CategoryID: categoryID,
	}
}

// SkillCreate adds a skill to a category.
func (a *Admin) SkillCreate(w http.ResponseWriter, r *http.Request) {
	skill := skillFromForm(r, 0)
	if msg := validateForm(skill); msg != "" {
		a.renderSkills(w, r, msg, nil)
		return
	}
	if _, err := a.content.Skills.AddSkill(r.Context(), skill); err != nil {
		slog.Error("skill create failed", "error", err)
		a.skillsFailed(w, r, "Could not add the skill", err)
		return
	}
	a.skillsDone(w, r, "Skill added.")
}

// SkillUpdate replaces a skill with the submitted form.
func (a *Admin) SkillUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	skill := skillFromForm(r, id)
	if msg := validateForm(skill); msg != "" {
		a.renderSkills(w, r, msg, nil)
		return
	}
	if err := a.content.Skills.UpdateSkill(r.Context(), id, skill); err != nil {
		slog.Error("skill update failed", "id", id, "error", err)
		a.skillsFailed(w, r, "Could not update the skill", err)
		return
	}
	a.skillsDone(w, r, "Skill updated.")
}

// SkillToggle flips the learning flag of a skill. The full skill from the
// snapshot is sent back with only the flag changed.
func (a *Admin) SkillToggle(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}

	snap, _ := a.snapshot(r)
	skill, found := findSkill(snap.SkillCategories, id)
	if !found {
		a.renderSkills(w, r, "", []render.Flash{render.Error("That skill no longer exists.")})
		return
	}
	skill.IsLearning = !skill.IsLearning

	if err := a.content.Skills.UpdateSkill(r.Context(), id, skill); err != nil {
		slog.Error("skill toggle failed", "id", id, "error", err)
		a.skillsFailed(w, r, "Could not update the skill", err)
		return
	}
	if skill.IsLearning {
		a.skillsDone(w, r, skill.Name+" marked as learning.")
	} else {
		a.skillsDone(w, r, skill.Name+" marked as learned.")
	}
}

// SkillDelete removes a skill.
func (a *Admin) SkillDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	if err := a.content.Skills.DeleteSkill(r.Context(), id); err != nil {
		slog.Error("skill delete failed", "id", id, "error", err)
		a.skillsFailed(w, r, "Could not delete the skill", err)
		return
	}
	a.skillsDone(w, r, "Skill deleted.")
}

func findSkill(cats []models.SkillCategory, id int64) (models.Skill, bool) {
	for _, c := range cats {
		for _, s := range c.Skills {
			if s.ID == id {
				return s, true
			}
		}
	}
	return models.Skill{}, false
}
