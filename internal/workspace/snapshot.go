// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package workspace

import (
	"fmt"

	"folioadmin/internal/models"
)

// Kind names one resource kind of the portfolio.
type Kind string

const (
	KindHero         Kind = "hero"
	KindAbout        Kind = "about"
	KindSkills       Kind = "skills"
	KindProjects     Kind = "projects"
	KindTimeline     Kind = "timeline"
	KindSocials      Kind = "socials"
	KindServices     Kind = "services"
	KindTestimonials Kind = "testimonials"
	KindContact      Kind = "contact"
)

// AllKinds lists every kind in the order the aggregate load reports them.
var AllKinds = []Kind{
	KindHero,
	KindAbout,
	KindSkills,
	KindProjects,
	KindTimeline,
	KindSocials,
	KindServices,
	KindTestimonials,
	KindContact,
}

// ParseKind validates a kind name coming from a URL or form.
func ParseKind(s string) (Kind, error) {
	for _, k := range AllKinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown resource kind %q", s)
}

// Snapshot is the full set of portfolio content held for one session.
// A published snapshot is never mutated; updates replace whole fields on
// a copy.
type Snapshot struct {
	Hero               models.HeroData
	About              models.AboutData
	SkillCategories    []models.SkillCategory
	Projects           []models.Project
	Timeline           []models.TimelineEvent
	SocialLinks        []models.SocialLink
	Services           []models.Service
	Testimonials       []models.Testimonial
	ContactSubmissions []models.ContactSubmission
}

// Counts are the dashboard totals.
type Counts struct {
	Projects     int
	Skills       int
	Timeline     int
	Services     int
	Testimonials int
	Contacts     int
}

// Counts sums the snapshot for the dashboard. Skills are counted across
// all categories.
func (s *Snapshot) Counts() Counts {
	skills := 0
	for _, c := range s.SkillCategories {
		skills += c.SkillCount()
	}
	return Counts{
		Projects:     len(s.Projects),
		Skills:       skills,
		Timeline:     len(s.Timeline),
		Services:     len(s.Services),
		Testimonials: len(s.Testimonials),
		Contacts:     len(s.ContactSubmissions),
	}
}

// copyKind replaces the field for kind with the one from src.
func (s *Snapshot) copyKind(kind Kind, src *Snapshot) {
	switch kind {
	case KindHero:
		s.Hero = src.Hero
	case KindAbout:
		s.About = src.About
	case KindSkills:
		s.SkillCategories = src.SkillCategories
	case KindProjects:
		s.Projects = src.Projects
	case KindTimeline:
		s.Timeline = src.Timeline
	case KindSocials:
		s.SocialLinks = src.SocialLinks
	case KindServices:
		s.Services = src.Services
	case KindTestimonials:
		s.Testimonials = src.Testimonials
	case KindContact:
		s.ContactSubmissions = src.ContactSubmissions
	}
}
