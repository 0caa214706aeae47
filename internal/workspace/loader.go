// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package workspace holds the per-session copy of the portfolio content.
// The Loader fetches every resource kind concurrently; a Workspace keeps
// the last good snapshot for one logged-in session and refreshes single
// kinds after mutations.
package workspace

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"folioadmin/internal/models"
)

// Source is the read side of the resource accessors. store.Portfolio
// implements it.
type Source interface {
	GetHero(ctx context.Context) (models.HeroData, error)
	GetAbout(ctx context.Context) (models.AboutData, error)
	ListSkillCategories(ctx context.Context) ([]models.SkillCategory, error)
	ListProjects(ctx context.Context) ([]models.Project, error)
	ListTimelineEvents(ctx context.Context) ([]models.TimelineEvent, error)
	ListSocialLinks(ctx context.Context) ([]models.SocialLink, error)
	ListServices(ctx context.Context) ([]models.Service, error)
	ListTestimonials(ctx context.Context) ([]models.Testimonial, error)
	ListContactSubmissions(ctx context.Context) ([]models.ContactSubmission, error)
}

// LoadError is the single error reported by an aggregate load, however
// many fetches failed.
type LoadError struct {
	// Failed lists the kinds whose fetch failed, in AllKinds order.
	Failed []Kind
	// Err is the first failure observed.
	Err error
}

func (e *LoadError) Error() string {
	names := make([]string, len(e.Failed))
	for i, k := range e.Failed {
		names[i] = string(k)
	}
	return fmt.Sprintf("load workspace: %d of %d fetches failed (%s): %v",
		len(e.Failed), len(AllKinds), strings.Join(names, ", "), e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Loader runs the aggregate load against a Source.
type Loader struct {
	src Source
}

// NewLoader creates a Loader.
func NewLoader(src Source) *Loader {
	return &Loader{src: src}
}

// Load fetches all kinds concurrently and waits for every fetch to settle.
// It returns either a complete snapshot or a *LoadError, never both.
// A failing fetch does not cancel the others.
func (l *Loader) Load(ctx context.Context) (*Snapshot, error) {
	var (
		snap   Snapshot
		g      errgroup.Group
		mu     sync.Mutex
		failed = make(map[Kind]bool)
	)

	for _, kind := range AllKinds {
		g.Go(func() error {
			// Each kind writes a distinct field of snap.
			if err := l.fetch(ctx, kind, &snap); err != nil {
				slog.Warn("workspace fetch failed", "kind", kind, "error", err)
				mu.Lock()
				failed[kind] = true
				mu.Unlock()
				return err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		le := &LoadError{Err: err}
		for _, k := range AllKinds {
			if failed[k] {
				le.Failed = append(le.Failed, k)
			}
		}
		return nil, le
	}
	return &snap, nil
}

// LoadKind fetches a single kind into a fresh snapshot; only the field for
// kind is populated.
func (l *Loader) LoadKind(ctx context.Context, kind Kind) (*Snapshot, error) {
	var snap Snapshot
	if err := l.fetch(ctx, kind, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (l *Loader) fetch(ctx context.Context, kind Kind, dst *Snapshot) error {
	var err error
	switch kind {
	case KindHero:
		dst.Hero, err = l.src.GetHero(ctx)
	case KindAbout:
		dst.About, err = l.src.GetAbout(ctx)
	case KindSkills:
		dst.SkillCategories, err = l.src.ListSkillCategories(ctx)
	case KindProjects:
		dst.Projects, err = l.src.ListProjects(ctx)
	case KindTimeline:
		dst.Timeline, err = l.src.ListTimelineEvents(ctx)
	case KindSocials:
		dst.SocialLinks, err = l.src.ListSocialLinks(ctx)
	case KindServices:
		dst.Services, err = l.src.ListServices(ctx)
	case KindTestimonials:
		dst.Testimonials, err = l.src.ListTestimonials(ctx)
	case KindContact:
		dst.ContactSubmissions, err = l.src.ListContactSubmissions(ctx)
	default:
		return fmt.Errorf("unknown resource kind %q", kind)
	}
	if err != nil {
		return fmt.Errorf("fetch %s: %w", kind, err)
	}
	return nil
}
