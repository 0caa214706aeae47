// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"folioadmin/internal/render"
	"folioadmin/internal/workspace"
)

// Collection serves the list and form screens of one list-shaped content
// kind: list, new, create, edit, update and delete.
type Collection[T any] struct {
	admin *Admin

	kind    workspace.Kind
	noun    string // singular, lower case: "project"
	title   string // list page title: "Projects"
	path    string // "/admin/projects"
	list    string // list template
	form    string // form template
	listKey string // Data key the list template ranges over

	items    func(*workspace.Snapshot) []T
	idOf     func(T) int64
	fromForm func(r *http.Request, id int64) T // id is 0 for new records
	blank    func() T

	add    func(context.Context, T) (*T, error)
	update func(context.Context, int64, T) error
	remove func(context.Context, int64) error
}

func (c *Collection[T]) section() string {
	return c.path[strings.LastIndexByte(c.path, '/')+1:]
}

// List renders the collection.
func (c *Collection[T]) List(w http.ResponseWriter, r *http.Request) {
	c.renderList(w, r, nil)
}

func (c *Collection[T]) renderList(w http.ResponseWriter, r *http.Request, flashes []render.Flash) {
	snap, warn := c.admin.snapshot(r)
	c.admin.page(w, r, c.list, c.title, c.section(), map[string]any{
		c.listKey: c.items(&snap),
	}, append(warn, flashes...))
}

// New renders an empty form.
func (c *Collection[T]) New(w http.ResponseWriter, r *http.Request) {
	c.renderForm(w, r, true, c.blank(), "")
}

// Edit renders the form for an existing record from the snapshot.
func (c *Collection[T]) Edit(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	item, found := c.find(r, id)
	if !found {
		pushURL(w, r, c.path)
		c.renderList(w, r, []render.Flash{render.Error("That " + c.noun + " no longer exists.")})
		return
	}
	c.renderForm(w, r, false, item, "")
}

// Create adds a record from the form and re-renders the list.
func (c *Collection[T]) Create(w http.ResponseWriter, r *http.Request) {
	item := c.fromForm(r, 0)
	if msg := validateForm(item); msg != "" {
		c.renderForm(w, r, true, item, msg)
		return
	}

	if _, err := c.add(r.Context(), item); err != nil {
		slog.Error("create failed", "kind", c.kind, "error", err)
		c.renderForm(w, r, true, item, failureMessage("Could not add the "+c.noun, err))
		return
	}

	pushURL(w, r, c.path)
	c.renderList(w, r, c.admin.refresh(r, c.kind, capitalize(c.noun)+" added."))
}

// Update replaces a record with the submitted form and re-renders the list.
func (c *Collection[T]) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}

	item := c.fromForm(r, id)
	if msg := validateForm(item); msg != "" {
		c.renderForm(w, r, false, item, msg)
		return
	}

	if err := c.update(r.Context(), id, item); err != nil {
		slog.Error("update failed", "kind", c.kind, "id", id, "error", err)
		c.renderForm(w, r, false, item, failureMessage("Could not update the "+c.noun, err))
		return
	}

	pushURL(w, r, c.path)
	c.renderList(w, r, c.admin.refresh(r, c.kind, capitalize(c.noun)+" updated."))
}

// Delete removes a record and re-renders the list.
func (c *Collection[T]) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}

	pushURL(w, r, c.path)
	if err := c.remove(r.Context(), id); err != nil {
		slog.Error("delete failed", "kind", c.kind, "id", id, "error", err)
		c.renderList(w, r, []render.Flash{render.Error(failureMessage("Could not delete the "+c.noun, err))})
		return
	}

	c.renderList(w, r, c.admin.refresh(r, c.kind, capitalize(c.noun)+" deleted."))
}

func (c *Collection[T]) renderForm(w http.ResponseWriter, r *http.Request, isNew bool, item T, errMsg string) {
	title := "Edit " + c.noun
	if isNew {
		title = "New " + c.noun
	}
	data := map[string]any{
		"IsNew":   isNew,
		"Item":    item,
		"Uploads": c.admin.uploads != nil,
	}
	if errMsg != "" {
		data["Error"] = errMsg
	}
	c.admin.page(w, r, c.form, capitalize(title), c.section(), data, nil)
}

func (c *Collection[T]) find(r *http.Request, id int64) (T, bool) {
	snap, _ := c.admin.snapshot(r)
	for _, item := range c.items(&snap) {
		if c.idOf(item) == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
