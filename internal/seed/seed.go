// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package seed prepares a development backend. The hero and about tables
// are singletons that the console only ever PATCHes, so a fresh database
// needs their row to exist first.
package seed

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/supabase-community/postgrest-go"

	"folioadmin/internal/models"
	"folioadmin/internal/store"
)

// NewClient creates a postgrest-go client for the data API.
func NewClient(baseURL, apiKey string) *postgrest.Client {
	headers := map[string]string{"apikey": apiKey}
	if apiKey != "" {
		headers["Authorization"] = "Bearer " + apiKey
	}
	return postgrest.NewClient(baseURL, "", headers)
}

// Singletons makes sure the hero and about rows exist. Existing rows are
// left alone; missing ones are upserted on the fixed id with the default
// content, so concurrent starts never produce a second row.
func Singletons(client *postgrest.Client) error {
	hero := models.DefaultHero()
	if err := ensureRow(client, "hero", map[string]any{
		"id":       store.SingletonID,
		"greeting": hero.Greeting,
		"name":     hero.Name,
		"title":    hero.Title,
		"subtitle": hero.Subtitle,
	}); err != nil {
		return err
	}

	return ensureRow(client, "about", map[string]any{
		"id":          store.SingletonID,
		"image_url":   "",
		"description": "",
		"info_items":  []models.InfoItem{},
	})
}

func ensureRow(client *postgrest.Client, table string, row map[string]any) error {
	id := strconv.FormatInt(store.SingletonID, 10)

	var existing []struct {
		ID int64 `json:"id"`
	}
	if _, err := client.From(table).Select("id", "", false).Eq("id", id).ExecuteTo(&existing); err != nil {
		return fmt.Errorf("seed check %s: %w", table, err)
	}
	if len(existing) > 0 {
		slog.Info("singleton already seeded, skipping", "table", table)
		return nil
	}

	if _, _, err := client.From(table).Upsert(row, "id", "minimal", "").Execute(); err != nil {
		return fmt.Errorf("seed upsert %s: %w", table, err)
	}

	slog.Info("singleton seeded", "table", table)
	return nil
}
