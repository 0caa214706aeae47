// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"folioadmin/internal/render"
	"folioadmin/internal/workspace"
)

// ContactList renders contact submissions, newest first as the backend
// returns them.
func (a *Admin) ContactList(w http.ResponseWriter, r *http.Request) {
	a.renderContact(w, r, nil)
}

func (a *Admin) renderContact(w http.ResponseWriter, r *http.Request, flashes []render.Flash) {
	snap, warn := a.snapshot(r)
	a.page(w, r, "contact", "Contact messages", "contact", map[string]any{
		"Submissions": snap.ContactSubmissions,
	}, append(warn, flashes...))
}

// ContactDelete removes a submission.
func (a *Admin) ContactDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}

	if err := a.content.Contact.Delete(r.Context(), id); err != nil {
		slog.Error("contact delete failed", "id", id, "error", err)
		a.renderContact(w, r, []render.Flash{render.Error(failureMessage("Could not delete the message", err))})
		return
	}
	a.renderContact(w, r, a.refresh(r, workspace.KindContact, "Message deleted."))
}
