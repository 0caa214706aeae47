// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"time"

	"folioadmin/internal/models"
	"folioadmin/internal/restapi"
)

type submissionRow struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Subject    string `json:"subject"`
	Message    string `json:"message"`
	ReceivedAt string `json:"received_at"`
}

// timestampLayouts are the forms PostgREST uses for timestamp and
// timestamptz columns.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
}

// parseTimestamp returns the zero time for an empty or unreadable value.
func parseTimestamp(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func submissionFromRow(r submissionRow) models.ContactSubmission {
	return models.ContactSubmission{
		ID:         r.ID,
		Name:       r.Name,
		Email:      r.Email,
		Subject:    r.Subject,
		Message:    r.Message,
		ReceivedAt: parseTimestamp(r.ReceivedAt),
	}
}

// ContactStore reads and deletes contact form submissions. Submissions are
// created by the public site, never here.
type ContactStore struct {
	client *restapi.Client
}

// NewContactStore creates a ContactStore.
func NewContactStore(client *restapi.Client) *ContactStore {
	return &ContactStore{client: client}
}

// List returns all submissions, newest first.
func (s *ContactStore) List(ctx context.Context) ([]models.ContactSubmission, error) {
	q := restapi.NewQuery(tableContact).Order("received_at", restapi.Desc)
	return list(ctx, s.client, q, submissionFromRow)
}

// Delete removes a submission.
func (s *ContactStore) Delete(ctx context.Context, id int64) error {
	return remove(ctx, s.client, tableContact, id)
}
