// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"

	"folioadmin/internal/models"
	"folioadmin/internal/restapi"
)

type socialRow struct {
	ID       int64  `json:"id,omitempty"`
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

func socialToRow(l models.SocialLink) socialRow {
	return socialRow{Platform: l.Platform, URL: l.URL}
}

func socialFromRow(r socialRow) models.SocialLink {
	return models.SocialLink{ID: r.ID, Platform: r.Platform, URL: r.URL}
}

// SocialStore manages social links.
type SocialStore struct {
	client *restapi.Client
}

// NewSocialStore creates a SocialStore.
func NewSocialStore(client *restapi.Client) *SocialStore {
	return &SocialStore{client: client}
}

// List returns all links ordered by id.
func (s *SocialStore) List(ctx context.Context) ([]models.SocialLink, error) {
	q := restapi.NewQuery(tableSocialLinks).Order("id", restapi.Asc)
	return list(ctx, s.client, q, socialFromRow)
}

// Add creates a link and returns it with its new id.
func (s *SocialStore) Add(ctx context.Context, l models.SocialLink) (*models.SocialLink, error) {
	row, err := insert[socialRow](ctx, s.client, tableSocialLinks, socialToRow(l))
	if err != nil {
		return nil, err
	}
	return mapCreated(row, socialFromRow), nil
}

// Update overwrites the link with the given id.
func (s *SocialStore) Update(ctx context.Context, id int64, l models.SocialLink) error {
	return patch(ctx, s.client, tableSocialLinks, id, socialToRow(l))
}

// Delete removes a link.
func (s *SocialStore) Delete(ctx context.Context, id int64) error {
	return remove(ctx, s.client, tableSocialLinks, id)
}
