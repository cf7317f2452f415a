package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "lumina/internal/errors"
	"lumina/internal/model"
)

func TestProjectService_Create(t *testing.T) {
	tests := []struct {
		name    string
		input   model.ProjectInput
		missing []string
	}{
		{
			name:  "valid",
			input: model.ProjectInput{Title: "Neon Drift", Category: "Branding", ImageURL: "https://img/1.png"},
		},
		{
			name:    "empty image url",
			input:   model.ProjectInput{Title: "Neon Drift", Category: "Branding"},
			missing: []string{"image_url"},
		},
		{
			name:    "everything blank",
			input:   model.ProjectInput{Description: "only a description"},
			missing: []string{"title", "category", "image_url"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockProjectRepository)
			if tt.missing == nil {
				repo.On("Create", mock.Anything, mock.MatchedBy(func(p *model.Project) bool {
					return p.Title == tt.input.Title
				})).Return(nil)
			}

			project, err := NewProjectService(repo).Create(context.Background(), tt.input)

			if tt.missing != nil {
				var verr *apperrors.ValidationError
				require.ErrorAs(t, err, &verr)
				assert.Equal(t, tt.missing, verr.Fields)
				assert.Nil(t, project)
				repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Branding", project.Category)
			repo.AssertExpectations(t)
		})
	}
}

func TestProjectService_SurfacesBackendErrors(t *testing.T) {
	repo := new(MockProjectRepository)
	repo.On("List", mock.Anything).Return(nil, errors.New("connection refused"))
	repo.On("Delete", mock.Anything, "p1").Return(errors.New("permission denied"))
	svc := NewProjectService(repo)

	_, err := svc.List(context.Background())
	assert.ErrorContains(t, err, "connection refused")
	assert.ErrorContains(t, svc.Delete(context.Background(), "p1"), "permission denied")
}

func TestProductService_Create(t *testing.T) {
	valid := model.ProductInput{
		Title:        "Glassmorphism UI Kit",
		Price:        decimal.RequireFromString("49.00"),
		ImageURL:     "https://img/kit.png",
		PurchaseLink: "https://lemonsqueezy.com",
	}

	t.Run("valid", func(t *testing.T) {
		repo := new(MockProductRepository)
		repo.On("Create", mock.Anything, mock.AnythingOfType("*model.Product")).Return(nil)

		product, err := NewProductService(repo).Create(context.Background(), valid)
		require.NoError(t, err)
		assert.True(t, product.Price.Equal(decimal.NewFromInt(49)))
	})

	t.Run("free product", func(t *testing.T) {
		repo := new(MockProductRepository)
		repo.On("Create", mock.Anything, mock.Anything).Return(nil)

		in := valid
		in.Price = decimal.Zero
		_, err := NewProductService(repo).Create(context.Background(), in)
		assert.NoError(t, err)
	})

	t.Run("negative price", func(t *testing.T) {
		repo := new(MockProductRepository)
		in := valid
		in.Price = decimal.NewFromInt(-1)

		_, err := NewProductService(repo).Create(context.Background(), in)
		assert.ErrorIs(t, err, apperrors.ErrNegativePrice)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("missing purchase link", func(t *testing.T) {
		repo := new(MockProductRepository)
		in := valid
		in.PurchaseLink = " "

		_, err := NewProductService(repo).Create(context.Background(), in)
		assert.ErrorIs(t, err, apperrors.ErrValidation)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestInquiryService_Create(t *testing.T) {
	full := model.InquiryInput{ClientName: "Alice", Email: "alice@example.com", Message: "Hi", ServiceType: "Branding"}
	blanks := map[string]func(*model.InquiryInput){
		"client_name":  func(in *model.InquiryInput) { in.ClientName = "" },
		"email":        func(in *model.InquiryInput) { in.Email = "" },
		"service_type": func(in *model.InquiryInput) { in.ServiceType = "" },
		"message":      func(in *model.InquiryInput) { in.Message = "" },
	}

	for field, blank := range blanks {
		t.Run("missing "+field, func(t *testing.T) {
			repo := new(MockInquiryRepository)
			in := full
			blank(&in)

			_, err := NewInquiryService(repo).Create(context.Background(), in)
			var verr *apperrors.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, []string{field}, verr.Fields)
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}

	t.Run("valid", func(t *testing.T) {
		repo := new(MockInquiryRepository)
		repo.On("Create", mock.Anything, mock.MatchedBy(func(i *model.Inquiry) bool {
			return !i.Read && i.ServiceType == "Branding"
		})).Return(nil)

		_, err := NewInquiryService(repo).Create(context.Background(), full)
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})
}

func TestProfileService(t *testing.T) {
	ctx := context.Background()
	repo := new(MockProfileRepository)
	profile := &model.Profile{ID: "u1", Email: "admin@lumina.com"}
	name := "Mikhail"

	repo.On("FindByID", ctx, "u1").Return(profile, nil)
	repo.On("FindByID", ctx, "u2").Return(nil, apperrors.ErrNotFound)
	repo.On("FindOwner", ctx).Return(nil, apperrors.ErrNotFound)
	repo.On("Update", ctx, "u1", model.ProfileUpdate{FullName: &name}).Return(nil)
	svc := NewProfileService(repo)

	got, err := svc.Mine(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, profile, got)

	got, err = svc.Mine(ctx, "u2")
	require.NoError(t, err)
	assert.Nil(t, got, "absent profile is not an error")

	got, err = svc.Owner(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, svc.Update(ctx, "u1", model.ProfileUpdate{FullName: &name}))
	assert.ErrorIs(t, svc.Update(ctx, "", model.ProfileUpdate{}), apperrors.ErrValidation)
	repo.AssertExpectations(t)
}
