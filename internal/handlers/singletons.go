// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"folioadmin/internal/models"
	"folioadmin/internal/render"
	"folioadmin/internal/workspace"
)

// --- Hero ---

// HeroPage renders the hero form.
func (a *Admin) HeroPage(w http.ResponseWriter, r *http.Request) {
	snap, warn := a.snapshot(r)
	a.renderHero(w, r, snap.Hero, "", warn)
}

func (a *Admin) renderHero(w http.ResponseWriter, r *http.Request, hero models.HeroData, errMsg string, flashes []render.Flash) {
	data := map[string]any{"Hero": hero}
	if errMsg != "" {
		data["Error"] = errMsg
	}
	a.page(w, r, "hero", "Hero", "hero", data, flashes)
}

// HeroUpdate saves the hero section.
func (a *Admin) HeroUpdate(w http.ResponseWriter, r *http.Request) {
	hero := models.HeroData{
		Greeting: formValue(r, "greeting"),
		Name:     formValue(r, "name"),
		Title:    formValue(r, "title"),
		Subtitle: formValue(r, "subtitle"),
	}
	if msg := validateForm(hero); msg != "" {
		a.renderHero(w, r, hero, msg, nil)
		return
	}

	if err := a.content.Hero.Update(r.Context(), hero); err != nil {
		slog.Error("hero update failed", "error", err)
		a.renderHero(w, r, hero, "", []render.Flash{render.Error(failureMessage("Could not save the hero section", err))})
		return
	}

	flashes := a.refresh(r, workspace.KindHero, "Hero section saved.")
	snap, warn := a.snapshot(r)
	if warn != nil {
		snap.Hero = hero
	}
	a.renderHero(w, r, snap.Hero, "", append(warn, flashes...))
}

// --- About ---

// AboutPage renders the about form.
func (a *Admin) AboutPage(w http.ResponseWriter, r *http.Request) {
	snap, warn := a.snapshot(r)
	a.renderAbout(w, r, snap.About, "", warn)
}

func (a *Admin) renderAbout(w http.ResponseWriter, r *http.Request, about models.AboutData, errMsg string, flashes []render.Flash) {
	data := map[string]any{
		"About":   about,
		"Uploads": a.uploads != nil,
	}
	if errMsg != "" {
		data["Error"] = errMsg
	}
	a.page(w, r, "about", "About", "about", data, flashes)
}

// AboutUpdate saves the about section with its info items.
func (a *Admin) AboutUpdate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	about := models.AboutData{
		ImageURL:    formValue(r, "image_url"),
		Description: formValue(r, "description"),
		InfoItems:   infoItemsFromForm(r),
	}
	if msg := validateForm(about); msg != "" {
		a.renderAbout(w, r, about, msg, nil)
		return
	}

	if err := a.content.About.Update(r.Context(), about); err != nil {
		slog.Error("about update failed", "error", err)
		a.renderAbout(w, r, about, "", []render.Flash{render.Error(failureMessage("Could not save the about section", err))})
		return
	}

	flashes := a.refresh(r, workspace.KindAbout, "About section saved.")
	snap, warn := a.snapshot(r)
	if warn != nil {
		snap.About = about
	}
	a.renderAbout(w, r, snap.About, "", append(warn, flashes...))
}

// InfoItemRow returns a blank info item row for the about form.
func (a *Admin) InfoItemRow(w http.ResponseWriter, r *http.Request) {
	a.renderer.Partial(w, "info_row", models.NewInfoItem("", "", ""))
}

// infoItemsFromForm zips the parallel info_* fields back into items.
// Rows left completely blank are dropped; rows without an id get one.
func infoItemsFromForm(r *http.Request) []models.InfoItem {
	ids := r.Form["info_id"]
	icons := r.Form["info_icon"]
	labels := r.Form["info_label"]
	values := r.Form["info_value"]

	at := func(s []string, i int) string {
		if i < len(s) {
			return strings.TrimSpace(s[i])
		}
		return ""
	}

	n := max(len(ids), len(icons), len(labels), len(values))
	items := make([]models.InfoItem, 0, n)
	for i := 0; i < n; i++ {
		icon, label, value := at(icons, i), at(labels, i), at(values, i)
		if icon == "" && label == "" && value == "" {
			continue
		}
		item := models.NewInfoItem(icon, label, value)
		if id := at(ids, i); id != "" {
			item.ID = id
		}
		items = append(items, item)
	}
	return items
}
