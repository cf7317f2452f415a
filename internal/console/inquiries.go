package console

import (
	"context"
	"sync"

	"lumina/internal/model"
	"lumina/internal/service"
)

const noInquiriesText = "No messages yet."

// InquiriesManager is the read-only Inquiries tab.
type InquiriesManager struct {
	svc service.InquiryService

	mu      sync.Mutex
	items   []model.Inquiry
	loading bool
	alert   string
}

type InquiriesView struct {
	Items     []model.Inquiry
	Loading   bool
	Empty     bool
	EmptyText string
	Alert     string
}

func NewInquiriesManager(svc service.InquiryService) *InquiriesManager {
	return &InquiriesManager{svc: svc}
}

func (m *InquiriesManager) Mount(ctx context.Context) error {
	m.mu.Lock()
	m.loading = true
	m.mu.Unlock()

	items, err := m.svc.List(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.loading = false
	if err != nil {
		m.alert = "Error loading inquiries: " + err.Error()
		return err
	}
	m.alert = ""
	m.items = items
	return nil
}

func (m *InquiriesManager) View() InquiriesView {
	m.mu.Lock()
	defer m.mu.Unlock()
	return InquiriesView{
		Items:     append([]model.Inquiry(nil), m.items...),
		Loading:   m.loading,
		Empty:     len(m.items) == 0,
		EmptyText: noInquiriesText,
		Alert:     m.alert,
	}
}
