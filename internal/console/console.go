package console

import (
	"context"
	"fmt"
	"sync"

	"lumina/internal/model"
	"lumina/internal/service"
)

// Tab names one manager panel.
type Tab string

const (
	TabProjects  Tab = "projects"
	TabProducts  Tab = "products"
	TabInquiries Tab = "inquiries"
	TabProfile   Tab = "profile"
)

// Tabs in sidebar order.
var Tabs = []Tab{TabProjects, TabProducts, TabInquiries, TabProfile}

// ParseTab validates a tab name from a URL.
func ParseTab(s string) (Tab, error) {
	for _, t := range Tabs {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTab, s)
}

// Label is the sidebar caption.
func (t Tab) Label() string {
	switch t {
	case TabProjects:
		return "Projects"
	case TabProducts:
		return "Products"
	case TabInquiries:
		return "Inquiries"
	case TabProfile:
		return "Profile"
	}
	return string(t)
}

// Services are the backends a console talks to.
type Services struct {
	Projects  service.ProjectService
	Products  service.ProductService
	Inquiries service.InquiryService
	Profiles  service.ProfileService
	Uploads   service.UploadService
}

// Console is one admin's tabbed dashboard.
type Console struct {
	User      *model.User
	Projects  *ProjectsManager
	Products  *ProductsManager
	Inquiries *InquiriesManager
	Profile   *ProfileManager

	mu      sync.Mutex
	active  Tab
	mounted map[Tab]bool
}

func New(svcs Services, user *model.User) *Console {
	return &Console{
		User:      user,
		Projects:  NewProjectsManager(svcs.Projects, svcs.Uploads),
		Products:  NewProductsManager(svcs.Products, svcs.Uploads),
		Inquiries: NewInquiriesManager(svcs.Inquiries),
		Profile:   NewProfileManager(svcs.Profiles, svcs.Uploads, user.ID),
		active:    TabProjects,
		mounted:   make(map[Tab]bool),
	}
}

// Active returns the selected tab.
func (c *Console) Active() Tab {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// Open selects tab. A panel is mounted (its data loaded) when switching to it or on
// first view; re-opening the current tab keeps its state.
func (c *Console) Open(ctx context.Context, tab Tab) error {
	c.mu.Lock()
	mount := tab != c.active || !c.mounted[tab]
	c.active = tab
	c.mounted[tab] = true
	c.mu.Unlock()

	if !mount {
		return nil
	}
	switch tab {
	case TabProjects:
		return c.Projects.Mount(ctx)
	case TabProducts:
		return c.Products.Mount(ctx)
	case TabInquiries:
		return c.Inquiries.Mount(ctx)
	case TabProfile:
		return c.Profile.Mount(ctx)
	}
	return fmt.Errorf("%w: %q", ErrUnknownTab, tab)
}
