// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"

	"folioadmin/internal/models"
	"folioadmin/internal/restapi"
)

type serviceRow struct {
	ID          int64  `json:"id,omitempty"`
	Icon        string `json:"icon"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

func serviceToRow(s models.Service) serviceRow {
	return serviceRow{Icon: s.Icon, Title: s.Title, Description: s.Description}
}

func serviceFromRow(r serviceRow) models.Service {
	return models.Service{ID: r.ID, Icon: r.Icon, Title: r.Title, Description: r.Description}
}

// ServiceStore manages the services offered.
type ServiceStore struct {
	client *restapi.Client
}

// NewServiceStore creates a ServiceStore.
func NewServiceStore(client *restapi.Client) *ServiceStore {
	return &ServiceStore{client: client}
}

// List returns all services ordered by id.
func (s *ServiceStore) List(ctx context.Context) ([]models.Service, error) {
	q := restapi.NewQuery(tableServices).Order("id", restapi.Asc)
	return list(ctx, s.client, q, serviceFromRow)
}

// Add creates a service and returns it with its new id.
func (s *ServiceStore) Add(ctx context.Context, svc models.Service) (*models.Service, error) {
	row, err := insert[serviceRow](ctx, s.client, tableServices, serviceToRow(svc))
	if err != nil {
		return nil, err
	}
	return mapCreated(row, serviceFromRow), nil
}

// Update overwrites the service with the given id.
func (s *ServiceStore) Update(ctx context.Context, id int64, svc models.Service) error {
	return patch(ctx, s.client, tableServices, id, serviceToRow(svc))
}

// Delete removes a service.
func (s *ServiceStore) Delete(ctx context.Context, id int64) error {
	return remove(ctx, s.client, tableServices, id)
}
