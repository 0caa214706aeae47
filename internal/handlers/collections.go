// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"folioadmin/internal/models"
	"folioadmin/internal/workspace"
)

func newProjects(a *Admin) *Collection[models.Project] {
	s := a.content.Projects
	return &Collection[models.Project]{
		admin:   a,
		kind:    workspace.KindProjects,
		noun:    "project",
		title:   "Projects",
		path:    "/admin/projects",
		list:    "projects",
		form:    "project_form",
		listKey: "Projects",
		items:   func(s *workspace.Snapshot) []models.Project { return s.Projects },
		idOf:    func(p models.Project) int64 { return p.ID },
		blank:   func() models.Project { return models.Project{Tags: []string{}} },
		fromForm: func(r *http.Request, id int64) models.Project {
			return models.Project{
				ID:          id,
				Title:       formValue(r, "title"),
				Description: formValue(r, "description"),
				ImageURL:    formValue(r, "image_url"),
				Tags:        splitTags(r.FormValue("tags")),
				DemoURL:     formValue(r, "demo_url"),
				RepoURL:     formValue(r, "repo_url"),
				IsFeatured:  formBool(r, "is_featured"),
			}
		},
		add:    s.Add,
		update: s.Update,
		remove: s.Delete,
	}
}

func newTimeline(a *Admin) *Collection[models.TimelineEvent] {
	s := a.content.Timeline
	return &Collection[models.TimelineEvent]{
		admin:   a,
		kind:    workspace.KindTimeline,
		noun:    "timeline event",
		title:   "Timeline",
		path:    "/admin/timeline",
		list:    "timeline",
		form:    "timeline_form",
		listKey: "Events",
		items:   func(s *workspace.Snapshot) []models.TimelineEvent { return s.Timeline },
		idOf:    func(e models.TimelineEvent) int64 { return e.ID },
		blank:   func() models.TimelineEvent { return models.TimelineEvent{} },
		fromForm: func(r *http.Request, id int64) models.TimelineEvent {
			return models.TimelineEvent{
				ID:          id,
				Year:        formValue(r, "year"),
				Title:       formValue(r, "title"),
				Description: formValue(r, "description"),
				Icon:        formValue(r, "icon"),
			}
		},
		add:    s.Add,
		update: s.Update,
		remove: s.Delete,
	}
}

func newSocials(a *Admin) *Collection[models.SocialLink] {
	s := a.content.Socials
	return &Collection[models.SocialLink]{
		admin:   a,
		kind:    workspace.KindSocials,
		noun:    "social link",
		title:   "Social links",
		path:    "/admin/socials",
		list:    "socials",
		form:    "social_form",
		listKey: "Links",
		items:   func(s *workspace.Snapshot) []models.SocialLink { return s.SocialLinks },
		idOf:    func(l models.SocialLink) int64 { return l.ID },
		blank:   func() models.SocialLink { return models.SocialLink{} },
		fromForm: func(r *http.Request, id int64) models.SocialLink {
			return models.SocialLink{
				ID:       id,
				Platform: formValue(r, "platform"),
				URL:      formValue(r, "url"),
			}
		},
		add:    s.Add,
		update: s.Update,
		remove: s.Delete,
	}
}

func newServices(a *Admin) *Collection[models.Service] {
	s := a.content.Services
	return &Collection[models.Service]{
		admin:   a,
		kind:    workspace.KindServices,
		noun:    "service",
		title:   "Services",
		path:    "/admin/services",
		list:    "services",
		form:    "service_form",
		listKey: "Services",
		items:   func(s *workspace.Snapshot) []models.Service { return s.Services },
		idOf:    func(svc models.Service) int64 { return svc.ID },
		blank:   func() models.Service { return models.Service{} },
		fromForm: func(r *http.Request, id int64) models.Service {
			return models.Service{
				ID:          id,
				Icon:        formValue(r, "icon"),
				Title:       formValue(r, "title"),
				Description: formValue(r, "description"),
			}
		},
		add:    s.Add,
		update: s.Update,
		remove: s.Delete,
	}
}

func newTestimonials(a *Admin) *Collection[models.Testimonial] {
	s := a.content.Testimonials
	return &Collection[models.Testimonial]{
		admin:   a,
		kind:    workspace.KindTestimonials,
		noun:    "testimonial",
		title:   "Testimonials",
		path:    "/admin/testimonials",
		list:    "testimonials",
		form:    "testimonial_form",
		listKey: "Testimonials",
		items:   func(s *workspace.Snapshot) []models.Testimonial { return s.Testimonials },
		idOf:    func(t models.Testimonial) int64 { return t.ID },
		blank:   func() models.Testimonial { return models.Testimonial{} },
		fromForm: func(r *http.Request, id int64) models.Testimonial {
			return models.Testimonial{
				ID:         id,
				ClientName: formValue(r, "client_name"),
				ClientRole: formValue(r, "client_role"),
				Quote:      formValue(r, "quote"),
				ImageURL:   formValue(r, "image_url"),
			}
		},
		add:    s.Add,
		update: s.Update,
		remove: s.Delete,
	}
}
