// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"bytes"
	"context"
	"encoding/json"

	"folioadmin/internal/models"
	"folioadmin/internal/restapi"
)

// flexString decodes a JSON string or number into a string. The year column
// was numeric in early schemas.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

type timelineRow struct {
	ID          int64      `json:"id,omitempty"`
	Year        flexString `json:"year"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Icon        string     `json:"icon"`
}

func timelineToRow(e models.TimelineEvent) timelineRow {
	return timelineRow{
		Year:        flexString(e.Year),
		Title:       e.Title,
		Description: e.Description,
		Icon:        e.Icon,
	}
}

func timelineFromRow(r timelineRow) models.TimelineEvent {
	return models.TimelineEvent{
		ID:          r.ID,
		Year:        string(r.Year),
		Title:       r.Title,
		Description: r.Description,
		Icon:        r.Icon,
	}
}

// TimelineStore manages timeline events.
type TimelineStore struct {
	client *restapi.Client
}

// NewTimelineStore creates a TimelineStore.
func NewTimelineStore(client *restapi.Client) *TimelineStore {
	return &TimelineStore{client: client}
}

// List returns all events, most recent year first.
func (s *TimelineStore) List(ctx context.Context) ([]models.TimelineEvent, error) {
	q := restapi.NewQuery(tableTimeline).Order("year", restapi.Desc)
	return list(ctx, s.client, q, timelineFromRow)
}

// Add creates an event and returns it with its new id.
func (s *TimelineStore) Add(ctx context.Context, e models.TimelineEvent) (*models.TimelineEvent, error) {
	row, err := insert[timelineRow](ctx, s.client, tableTimeline, timelineToRow(e))
	if err != nil {
		return nil, err
	}
	return mapCreated(row, timelineFromRow), nil
}

// Update overwrites the event with the given id.
func (s *TimelineStore) Update(ctx context.Context, id int64, e models.TimelineEvent) error {
	return patch(ctx, s.client, tableTimeline, id, timelineToRow(e))
}

// Delete removes an event.
func (s *TimelineStore) Delete(ctx context.Context, id int64) error {
	return remove(ctx, s.client, tableTimeline, id)
}
