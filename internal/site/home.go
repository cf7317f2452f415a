package site

import (
	"context"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"lumina/internal/model"
	"lumina/internal/service"
)

// Offering is one card of the services section.
type Offering struct {
	Title       string
	Description string
	Icon        string
}

// Offerings are the static services cards.
var Offerings = []Offering{
	{Title: "Branding", Description: "Logo design, visual identity systems, and brand guidelines.", Icon: "❖"},
	{Title: "Web Design", Description: "Responsive websites, landing pages, and UI/UX design.", Icon: "⌘"},
	{Title: "Art Direction", Description: "Visual strategy for campaigns, photo shoots, and digital content.", Icon: "✦"},
}

// Hero is the intro block at the top of the page.
type Hero struct {
	Name      string
	Headline  string
	Bio       string
	AvatarURL string
}

// DefaultHero is shown when no owner profile exists.
func DefaultHero() Hero {
	return Hero{
		Name:      "Mikhail Gerges Mikhail",
		Headline:  "Senior Graphic Designer",
		Bio:       "Specializing in branding, visual identity, and digital products. I craft digital experiences that matter, blending minimalist aesthetics with functional precision.",
		AvatarURL: "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?fit=crop&w=800&q=80",
	}
}

// HeroFrom fills the hero from p, field by field, keeping defaults for blanks.
func HeroFrom(p *model.Profile) Hero {
	h := DefaultHero()
	if p == nil {
		return h
	}
	if p.FullName != "" {
		h.Name = p.FullName
	}
	if p.Headline != "" {
		h.Headline = p.Headline
	}
	if p.Bio != "" {
		h.Bio = p.Bio
	}
	if p.AvatarURL != "" {
		h.AvatarURL = p.AvatarURL
	}
	return h
}

// Home is everything the landing page renders.
type Home struct {
	Hero         Hero
	Projects     []model.Project
	Products     []model.Product
	Offerings    []Offering
	ServiceTypes []ServiceOption
	Contact      Contact
}

// Loader reads the landing page data.
type Loader struct {
	projects service.ProjectService
	products service.ProductService
	profiles service.ProfileService
	log      zerolog.Logger
}

func NewLoader(projects service.ProjectService, products service.ProductService, profiles service.ProfileService, log zerolog.Logger) *Loader {
	return &Loader{projects: projects, products: products, profiles: profiles, log: log}
}

// LoadHome fetches projects, products and the owner profile in parallel. A failed
// source is logged and rendered empty; the page itself always loads.
func (l *Loader) LoadHome(ctx context.Context) *Home {
	home := &Home{
		Offerings:    Offerings,
		ServiceTypes: ServiceTypes,
		Contact:      NewContact(),
	}
	var profile *model.Profile

	var g errgroup.Group
	g.Go(func() error {
		projects, err := l.projects.List(ctx)
		if err != nil {
			l.log.Error().Err(err).Msg("load projects for home page")
			return nil
		}
		home.Projects = projects
		return nil
	})
	g.Go(func() error {
		products, err := l.products.List(ctx)
		if err != nil {
			l.log.Error().Err(err).Msg("load products for home page")
			return nil
		}
		home.Products = products
		return nil
	})
	g.Go(func() error {
		p, err := l.profiles.Owner(ctx)
		if err != nil {
			l.log.Error().Err(err).Msg("load owner profile for home page")
			return nil
		}
		profile = p
		return nil
	})
	_ = g.Wait()

	home.Hero = HeroFrom(profile)
	return home
}
