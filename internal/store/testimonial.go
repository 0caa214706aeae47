// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"

	"folioadmin/internal/models"
	"folioadmin/internal/restapi"
)

type testimonialRow struct {
	ID         int64  `json:"id,omitempty"`
	ClientName string `json:"client_name"`
	ClientRole string `json:"client_role"`
	Quote      string `json:"quote"`
	ImageURL   string `json:"image_url"`
}

func testimonialToRow(t models.Testimonial) testimonialRow {
	return testimonialRow{
		ClientName: t.ClientName,
		ClientRole: t.ClientRole,
		Quote:      t.Quote,
		ImageURL:   t.ImageURL,
	}
}

func testimonialFromRow(r testimonialRow) models.Testimonial {
	return models.Testimonial{
		ID:         r.ID,
		ClientName: r.ClientName,
		ClientRole: r.ClientRole,
		Quote:      r.Quote,
		ImageURL:   r.ImageURL,
	}
}

// TestimonialStore manages client testimonials.
type TestimonialStore struct {
	client *restapi.Client
}

// NewTestimonialStore creates a TestimonialStore.
func NewTestimonialStore(client *restapi.Client) *TestimonialStore {
	return &TestimonialStore{client: client}
}

// List returns all testimonials ordered by id.
func (s *TestimonialStore) List(ctx context.Context) ([]models.Testimonial, error) {
	q := restapi.NewQuery(tableTestimonials).Order("id", restapi.Asc)
	return list(ctx, s.client, q, testimonialFromRow)
}

// Add creates a testimonial and returns it with its new id.
func (s *TestimonialStore) Add(ctx context.Context, t models.Testimonial) (*models.Testimonial, error) {
	row, err := insert[testimonialRow](ctx, s.client, tableTestimonials, testimonialToRow(t))
	if err != nil {
		return nil, err
	}
	return mapCreated(row, testimonialFromRow), nil
}

// Update overwrites the testimonial with the given id.
func (s *TestimonialStore) Update(ctx context.Context, id int64, t models.Testimonial) error {
	return patch(ctx, s.client, tableTestimonials, id, testimonialToRow(t))
}

// Delete removes a testimonial.
func (s *TestimonialStore) Delete(ctx context.Context, id int64) error {
	return remove(ctx, s.client, tableTestimonials, id)
}
