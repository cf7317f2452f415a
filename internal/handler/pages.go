package handler

import (
	"lumina/internal/console"
	"lumina/internal/model"
	"lumina/internal/site"
)

// Template names rendered by the web renderer.
const (
	homeTemplate  = "home.html"
	loginTemplate = "login.html"
	adminTemplate = "admin.html"
)

// HomePage is the data of the public landing page.
type HomePage struct {
	Title    string
	MockMode bool
	Home     *site.Home
}

// LoginPage is the data of the sign-in form.
type LoginPage struct {
	Title        string
	MockMode     bool
	Email        string
	Error        string
	MockEmail    string
	MockPassword string
}

// AdminPage is the data of the dashboard. Only the active tab's view is set.
type AdminPage struct {
	Title     string
	MockMode  bool
	User      *model.User
	Active    console.Tab
	Tabs      []console.Tab
	Projects  *console.CRUDView[model.Project, console.ProjectForm]
	Products  *console.CRUDView[model.Product, console.ProductForm]
	Inquiries *console.InquiriesView
	Profile   *console.ProfileView
}
