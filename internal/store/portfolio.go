// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"

	"folioadmin/internal/models"
	"folioadmin/internal/restapi"
)

// Portfolio bundles one store per content kind over a shared client.
type Portfolio struct {
	Hero         *HeroStore
	About        *AboutStore
	Skills       *SkillStore
	Projects     *ProjectStore
	Timeline     *TimelineStore
	Socials      *SocialStore
	Services     *ServiceStore
	Testimonials *TestimonialStore
	Contact      *ContactStore
}

// NewPortfolio creates every store against the same client.
func NewPortfolio(client *restapi.Client) *Portfolio {
	return &Portfolio{
		Hero:         NewHeroStore(client),
		About:        NewAboutStore(client),
		Skills:       NewSkillStore(client),
		Projects:     NewProjectStore(client),
		Timeline:     NewTimelineStore(client),
		Socials:      NewSocialStore(client),
		Services:     NewServiceStore(client),
		Testimonials: NewTestimonialStore(client),
		Contact:      NewContactStore(client),
	}
}

func (p *Portfolio) GetHero(ctx context.Context) (models.HeroData, error) {
	return p.Hero.Get(ctx)
}

func (p *Portfolio) GetAbout(ctx context.Context) (models.AboutData, error) {
	return p.About.Get(ctx)
}

func (p *Portfolio) ListSkillCategories(ctx context.Context) ([]models.SkillCategory, error) {
	return p.Skills.ListCategories(ctx)
}

func (p *Portfolio) ListProjects(ctx context.Context) ([]models.Project, error) {
	return p.Projects.List(ctx)
}

func (p *Portfolio) ListTimelineEvents(ctx context.Context) ([]models.TimelineEvent, error) {
	return p.Timeline.List(ctx)
}

func (p *Portfolio) ListSocialLinks(ctx context.Context) ([]models.SocialLink, error) {
	return p.Socials.List(ctx)
}

func (p *Portfolio) ListServices(ctx context.Context) ([]models.Service, error) {
	return p.Services.List(ctx)
}

func (p *Portfolio) ListTestimonials(ctx context.Context) ([]models.Testimonial, error) {
	return p.Testimonials.List(ctx)
}

func (p *Portfolio) ListContactSubmissions(ctx context.Context) ([]models.ContactSubmission, error) {
	return p.Contact.List(ctx)
}
