// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the domain shapes of the portfolio content edited
// through the admin console. Field names are the console's own; the backend
// row names live in the store package next to the mappers.
package models

import (
	"time"

	"github.com/google/uuid"
)

// HeroData is the banner at the top of the portfolio. Singleton.
type HeroData struct {
	Greeting string `json:"greeting" validate:"max=200"`
	Name     string `json:"name" validate:"required,max=200"`
	Title    string `json:"title" validate:"max=200"`
	Subtitle string `json:"subtitle" validate:"max=1000"`
}

// DefaultHero is shown when the backend has no hero row yet.
func DefaultHero() HeroData {
	return HeroData{
		Greeting: "Hi, I'm",
		Name:     "Your Name",
		Title:    "Your Title",
		Subtitle: "Your subtitle",
	}
}

// AboutData is the about section. Singleton.
type AboutData struct {
	ImageURL    string     `json:"imageUrl" validate:"omitempty,url"`
	Description string     `json:"description" validate:"max=20000"`
	InfoItems   []InfoItem `json:"infoItems" validate:"dive"`
}

// DefaultAbout is shown when the backend has no about row yet.
func DefaultAbout() AboutData {
	return AboutData{InfoItems: []InfoItem{}}
}

// InfoItem is one icon/label/value line inside the about section.
// It has no lifecycle of its own; the id only keys form rows.
type InfoItem struct {
	ID    string `json:"id"`
	Icon  string `json:"icon" validate:"max=100"`
	Label string `json:"label" validate:"required,max=200"`
	Value string `json:"value" validate:"max=500"`
}

// NewInfoItem creates an info item with a fresh random id.
func NewInfoItem(icon, label, value string) InfoItem {
	return InfoItem{ID: uuid.NewString(), Icon: icon, Label: label, Value: value}
}

// SkillCategory groups skills ("Frontend", "Tooling").
type SkillCategory struct {
	ID     int64   `json:"id"`
	Name   string  `json:"name" validate:"required,max=200"`
	Skills []Skill `json:"skills"`
}

// SkillCount returns the number of skills in the category.
func (c SkillCategory) SkillCount() int {
	return len(c.Skills)
}

// Skill belongs to exactly one category.
type Skill struct {
	ID         int64  `json:"id"`
	Name       string `json:"name" validate:"required,max=200"`
	IsLearning bool   `json:"isLearning"`
	CategoryID int64  `json:"category_id" validate:"required,gt=0"`
}

// Project is a portfolio entry. Tags is never nil once read from the backend.
type Project struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title" validate:"required,max=300"`
	Description string   `json:"description" validate:"max=20000"`
	ImageURL    string   `json:"imageUrl" validate:"omitempty,url"`
	Tags        []string `json:"tags" validate:"dive,max=60"`
	DemoURL     string   `json:"demoUrl,omitempty" validate:"omitempty,url"`
	RepoURL     string   `json:"repoUrl,omitempty" validate:"omitempty,url"`
	IsFeatured  bool     `json:"isFeatured"`
}

// TimelineEvent is one milestone. Year is free text ("2021", "2019 - 2021").
type TimelineEvent struct {
	ID          int64  `json:"id"`
	Year        string `json:"year" validate:"required,max=50"`
	Title       string `json:"title" validate:"required,max=300"`
	Description string `json:"description" validate:"max=5000"`
	Icon        string `json:"icon" validate:"max=100"`
}

// SocialLink points to a profile on another platform.
type SocialLink struct {
	ID       int64  `json:"id"`
	Platform string `json:"platform" validate:"required,max=100"`
	URL      string `json:"url" validate:"required,url"`
}

// Service is an offering listed on the portfolio.
type Service struct {
	ID          int64  `json:"id"`
	Icon        string `json:"icon" validate:"max=100"`
	Title       string `json:"title" validate:"required,max=300"`
	Description string `json:"description" validate:"max=5000"`
}

// Testimonial is a client quote.
type Testimonial struct {
	ID         int64  `json:"id"`
	ClientName string `json:"clientName" validate:"required,max=200"`
	ClientRole string `json:"clientRole" validate:"max=200"`
	Quote      string `json:"quote" validate:"required,max=5000"`
	ImageURL   string `json:"imageUrl" validate:"omitempty,url"`
}

// ContactSubmission is a message sent through the public contact form.
// The console only reads and deletes them.
type ContactSubmission struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Subject    string    `json:"subject"`
	Message    string    `json:"message"`
	ReceivedAt time.Time `json:"receivedAt"`
}
