// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"encoding/json"

	"folioadmin/internal/models"
	"folioadmin/internal/restapi"
)

// aboutRow is the backend shape of the about table. info_items is a JSON
// column and is kept raw so a malformed value never fails the whole read.
type aboutRow struct {
	ImageURL    string          `json:"image_url"`
	Description string          `json:"description"`
	InfoItems   json.RawMessage `json:"info_items"`
}

func aboutToRow(a models.AboutData) aboutRow {
	items := a.InfoItems
	if items == nil {
		items = []models.InfoItem{}
	}
	raw, _ := json.Marshal(items)
	return aboutRow{ImageURL: a.ImageURL, Description: a.Description, InfoItems: raw}
}

func aboutFromRow(r aboutRow) models.AboutData {
	return models.AboutData{
		ImageURL:    r.ImageURL,
		Description: r.Description,
		InfoItems:   decodeInfoItems(r.InfoItems),
	}
}

// decodeInfoItems reads the info_items column. Anything that is not an array
// of objects yields an empty list.
func decodeInfoItems(raw json.RawMessage) []models.InfoItem {
	items := []models.InfoItem{}
	if len(raw) == 0 {
		return items
	}
	var decoded []models.InfoItem
	if err := json.Unmarshal(raw, &decoded); err != nil || decoded == nil {
		return items
	}
	return decoded
}

// AboutStore reads and updates the about singleton.
type AboutStore struct {
	client *restapi.Client
}

// NewAboutStore creates an AboutStore.
func NewAboutStore(client *restapi.Client) *AboutStore {
	return &AboutStore{client: client}
}

// Get returns the about section, or models.DefaultAbout when no row exists.
func (s *AboutStore) Get(ctx context.Context) (models.AboutData, error) {
	row, err := getSingleton[aboutRow](ctx, s.client, tableAbout)
	if err != nil {
		return models.AboutData{}, err
	}
	if row == nil {
		return models.DefaultAbout(), nil
	}
	return aboutFromRow(*row), nil
}

// Update overwrites the about row with the fixed singleton id.
func (s *AboutStore) Update(ctx context.Context, a models.AboutData) error {
	return updateSingleton(ctx, s.client, tableAbout, aboutToRow(a))
}
