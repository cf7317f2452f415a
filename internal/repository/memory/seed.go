package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"lumina/internal/model"
)

const (
	// MockAdminEmail and MockAdminPassword sign in to the console in mock mode.
	MockAdminEmail    = "admin@lumina.com"
	MockAdminPassword = "admin"
)

// SampleProjects returns the portfolio shown when no live backend is configured.
func SampleProjects() []model.ProjectInput {
	return []model.ProjectInput{
		{Title: "Neon Drift", Description: "Automotive cyberpunk brand identity.", ImageURL: "https://picsum.photos/800/600?random=1", Category: "Branding"},
		{Title: "Aerospace UI", Description: "Flight control system dashboard interface.", ImageURL: "https://picsum.photos/800/600?random=2", Category: "UI/UX"},
		{Title: "Eco packaging", Description: "Sustainable packaging for organic cosmetics.", ImageURL: "https://picsum.photos/800/600?random=3", Category: "Packaging"},
		{Title: "Minimalist Arch", Description: "Architectural photography portfolio site.", ImageURL: "https://picsum.photos/800/600?random=4", Category: "Web Design"},
	}
}

// SampleProducts returns the store listings shown when no live backend is configured.
func SampleProducts() []model.ProductInput {
	return []model.ProductInput{
		{Title: "Cyberpunk Vector Pack", Price: decimal.RequireFromString("29.99"), ImageURL: "https://picsum.photos/400/400?random=10", PurchaseLink: "https://gumroad.com"},
		{Title: "Glassmorphism UI Kit", Price: decimal.RequireFromString("49.00"), ImageURL: "https://picsum.photos/400/400?random=11", PurchaseLink: "https://lemonsqueezy.com"},
	}
}

// SampleInquiries returns the inbox shown when no live backend is configured.
func SampleInquiries() []model.InquiryInput {
	return []model.InquiryInput{
		{ClientName: "Alice Johnson", Email: "alice@example.com", Message: "I need a rebranding for my tech startup.", ServiceType: "Branding"},
	}
}

// SampleProfile returns the owner profile used by the hero section.
func SampleProfile(id, email string) *model.Profile {
	return &model.Profile{
		ID:        id,
		Email:     email,
		FullName:  "Mikhail Gerges Mikhail",
		Headline:  "Senior Graphic Designer",
		Bio:       "Specializing in branding, visual identity, and digital products. I craft digital experiences that matter, blending minimalist aesthetics with functional precision.",
		AvatarURL: "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?fit=crop&w=800&q=80",
	}
}

// NewSeededStore returns a store holding the sample data set and the mock admin account.
// Sample records are spaced a minute apart so the listed order matches the order above.
func NewSeededStore() (*Store, error) {
	s := NewStore()
	ctx := context.Background()
	base := s.now()

	for i, in := range SampleProjects() {
		p := model.NewProject(in)
		p.CreatedAt = base.Add(-time.Duration(i+1) * time.Minute)
		if err := s.Projects().Create(ctx, p); err != nil {
			return nil, err
		}
	}
	for i, in := range SampleProducts() {
		p := model.NewProduct(in)
		p.CreatedAt = base.Add(-time.Duration(i+1) * time.Minute)
		if err := s.Products().Create(ctx, p); err != nil {
			return nil, err
		}
	}
	for i, in := range SampleInquiries() {
		inq := model.NewInquiry(in)
		inq.CreatedAt = base.Add(-time.Duration(i+1) * time.Minute)
		if err := s.Inquiries().Create(ctx, inq); err != nil {
			return nil, err
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(MockAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash mock password: %w", err)
	}
	admin := &model.User{Email: MockAdminEmail, PasswordHash: string(hash)}
	if err := s.Users().Create(ctx, admin); err != nil {
		return nil, err
	}
	if err := s.Profiles().Create(ctx, SampleProfile(admin.ID, admin.Email)); err != nil {
		return nil, err
	}
	return s, nil
}
