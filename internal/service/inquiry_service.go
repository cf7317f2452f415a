package service

import (
	"context"
	"fmt"

	apperrors "lumina/internal/errors"
	"lumina/internal/model"
	"lumina/internal/repository"
)

// InquiryService stores contact form messages. Admins only read them.
type InquiryService interface {
	List(ctx context.Context) ([]model.Inquiry, error)
	Create(ctx context.Context, in model.InquiryInput) (*model.Inquiry, error)
}

type inquiryService struct {
	repo repository.InquiryRepository
}

func NewInquiryService(repo repository.InquiryRepository) InquiryService {
	return &inquiryService{repo: repo}
}

func (s *inquiryService) List(ctx context.Context) ([]model.Inquiry, error) {
	inquiries, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list inquiries: %w", err)
	}
	return inquiries, nil
}

func (s *inquiryService) Create(ctx context.Context, in model.InquiryInput) (*model.Inquiry, error) {
	if err := apperrors.Required([]string{"client_name", "email", "service_type", "message"}, map[string]string{
		"client_name":  in.ClientName,
		"email":        in.Email,
		"service_type": in.ServiceType,
		"message":      in.Message,
	}); err != nil {
		return nil, err
	}
	inquiry := model.NewInquiry(in)
	if err := s.repo.Create(ctx, inquiry); err != nil {
		return nil, fmt.Errorf("create inquiry: %w", err)
	}
	return inquiry, nil
}
