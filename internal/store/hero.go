// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"

	"folioadmin/internal/models"
	"folioadmin/internal/restapi"
)

// heroRow is the backend shape of the hero table. Column names already
// match the domain names.
type heroRow struct {
	Greeting string `json:"greeting"`
	Name     string `json:"name"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
}

func heroToRow(h models.HeroData) heroRow {
	return heroRow{Greeting: h.Greeting, Name: h.Name, Title: h.Title, Subtitle: h.Subtitle}
}

func heroFromRow(r heroRow) models.HeroData {
	return models.HeroData{Greeting: r.Greeting, Name: r.Name, Title: r.Title, Subtitle: r.Subtitle}
}

// HeroStore reads and updates the hero singleton.
type HeroStore struct {
	client *restapi.Client
}

// NewHeroStore creates a HeroStore.
func NewHeroStore(client *restapi.Client) *HeroStore {
	return &HeroStore{client: client}
}

// Get returns the hero, or models.DefaultHero when no row exists yet.
func (s *HeroStore) Get(ctx context.Context) (models.HeroData, error) {
	row, err := getSingleton[heroRow](ctx, s.client, tableHero)
	if err != nil {
		return models.HeroData{}, err
	}
	if row == nil {
		return models.DefaultHero(), nil
	}
	return heroFromRow(*row), nil
}

// Update overwrites the hero row with the fixed singleton id.
func (s *HeroStore) Update(ctx context.Context, h models.HeroData) error {
	return updateSingleton(ctx, s.client, tableHero, heroToRow(h))
}
