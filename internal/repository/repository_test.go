package repository

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"lumina/internal/db"
	apperrors "lumina/internal/errors"
	"lumina/internal/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := db.Open("sqlite:file::memory:")
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	// every pooled connection to :memory: would otherwise see its own empty database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.Migrate(gdb))
	return gdb
}

func TestProjectRepository_CreateListDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewProjectRepository(newTestDB(t))

	older := &model.Project{Title: "Aerospace UI", Category: "UI/UX", ImageURL: "https://x/2.png", CreatedAt: time.Now().Add(-time.Hour)}
	require.NoError(t, repo.Create(ctx, older))

	start := time.Now()
	p := model.NewProject(model.ProjectInput{Title: "Neon Drift", Category: "Branding", ImageURL: "https://x/1.png", Description: "..."})
	require.NoError(t, repo.Create(ctx, p))
	assert.NotEmpty(t, p.ID)
	assert.False(t, p.CreatedAt.Before(start))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, p.ID, list[0].ID)
	assert.Equal(t, "Neon Drift", list[0].Title)

	require.NoError(t, repo.Delete(ctx, p.ID))
	list, err = repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, older.ID, list[0].ID)

	assert.NoError(t, repo.Delete(ctx, "does-not-exist"))
}

func TestProductRepository_CreateListDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository(newTestDB(t))

	first := model.NewProduct(model.ProductInput{
		Title:        "Cyberpunk Vector Pack",
		Price:        decimal.RequireFromString("29.99"),
		ImageURL:     "https://x/10.png",
		PurchaseLink: "https://gumroad.com",
	})
	first.CreatedAt = time.Now().Add(-time.Minute)
	require.NoError(t, repo.Create(ctx, first))

	second := model.NewProduct(model.ProductInput{
		Title:        "Glassmorphism UI Kit",
		Price:        decimal.RequireFromString("49"),
		ImageURL:     "https://x/11.png",
		PurchaseLink: "https://lemonsqueezy.com",
	})
	require.NoError(t, repo.Create(ctx, second))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.True(t, list[1].Price.Equal(decimal.RequireFromString("29.99")))

	require.NoError(t, repo.Delete(ctx, first.ID))
	list, err = repo.List(ctx)
	require.NoError(t, err)
	for _, p := range list {
		assert.NotEqual(t, first.ID, p.ID)
	}
}

func TestInquiryRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewInquiryRepository(newTestDB(t))

	old := model.NewInquiry(model.InquiryInput{ClientName: "Alice Johnson", Email: "alice@example.com", Message: "Rebrand", ServiceType: "Branding"})
	old.CreatedAt = time.Now().Add(-time.Hour)
	require.NoError(t, repo.Create(ctx, old))

	inq := model.NewInquiry(model.InquiryInput{ClientName: "Bob", Email: "bob@example.com", Message: "Hi", ServiceType: "General"})
	require.NoError(t, repo.Create(ctx, inq))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, inq.ID, list[0].ID)
	assert.False(t, list[0].Read)
}

func TestProfileRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewProfileRepository(newTestDB(t))

	_, err := repo.FindByID(ctx, "nobody")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	_, err = repo.FindOwner(ctx)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	require.NoError(t, repo.Create(ctx, &model.Profile{ID: "u1", Email: "admin@lumina.com", FullName: "Old Name"}))

	headline := "Senior Graphic Designer"
	name := "Mikhail"
	require.NoError(t, repo.Update(ctx, "u1", model.ProfileUpdate{FullName: &name, Headline: &headline}))
	require.NoError(t, repo.Update(ctx, "u1", model.ProfileUpdate{}))

	p, err := repo.FindByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Mikhail", p.FullName)
	assert.Equal(t, "Senior Graphic Designer", p.Headline)
	assert.Equal(t, "admin@lumina.com", p.Email)

	owner, err := repo.FindOwner(ctx)
	require.NoError(t, err)
	assert.Equal(t, "u1", owner.ID)
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(newTestDB(t))

	u := &model.User{Email: "admin@lumina.com", PasswordHash: "hash"}
	require.NoError(t, repo.Create(ctx, u))
	assert.NotEmpty(t, u.ID)

	byEmail, err := repo.FindByEmail(ctx, "admin@lumina.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)

	byID, err := repo.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "admin@lumina.com", byID.Email)

	_, err = repo.FindByEmail(ctx, "ghost@lumina.com")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
