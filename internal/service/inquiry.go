package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"estate/internal/model"
)

// InquiryStore is the storage the inquiry service needs
type InquiryStore interface {
	CreateInquiry(ctx context.Context, inq *model.Inquiry) error
	ListInquiries(ctx context.Context) ([]model.Inquiry, error)
	UpdateInquiryStatus(ctx context.Context, id, status string) (*model.Inquiry, error)
}

// InquiryService records visitor inquiries and their handling status
type InquiryService struct {
	repo InquiryStore
	log  zerolog.Logger
}

func NewInquiryService(repo InquiryStore, log zerolog.Logger) *InquiryService {
	return &InquiryService{repo: repo, log: log.With().Str("component", "inquiries").Logger()}
}

// Submit stores a new inquiry in the "new" status
func (s *InquiryService) Submit(ctx context.Context, in model.InquiryInput) (*model.Inquiry, error) {
	inq := in.ToInquiry()
	if err := s.repo.CreateInquiry(ctx, &inq); err != nil {
		return nil, err
	}
	s.log.Info().Str("inquiry_id", inq.ID).Msg("inquiry received")
	return &inq, nil
}

// List returns every inquiry, newest first
func (s *InquiryService) List(ctx context.Context) ([]model.Inquiry, error) {
	return s.repo.ListInquiries(ctx)
}

// SetStatus moves an inquiry through the admin workflow
func (s *InquiryService) SetStatus(ctx context.Context, id, status string) (*model.Inquiry, error) {
	return s.repo.UpdateInquiryStatus(ctx, id, strings.TrimSpace(status))
}
