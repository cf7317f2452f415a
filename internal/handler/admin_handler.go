package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"lumina/internal/console"
	apperrors "lumina/internal/errors"
	"lumina/internal/metrics"
	"lumina/internal/storage"
)

// formPanel is the create/delete surface shared by the projects and products tabs.
type formPanel interface {
	ToggleForm()
	Upload(ctx context.Context, file storage.File) error
	Submit(ctx context.Context) error
	RequestDelete(id string)
	CancelDelete()
	ConfirmDelete(ctx context.Context) error
	DismissAlert()
}

// AdminHandler drives the per-session console. Every POST redirects back to the tab.
type AdminHandler struct {
	consoles  *console.Registry
	maxUpload int64
	mock      bool
	log       zerolog.Logger
}

func NewAdminHandler(consoles *console.Registry, maxUpload int64, mock bool, log zerolog.Logger) *AdminHandler {
	return &AdminHandler{consoles: consoles, maxUpload: maxUpload, mock: mock, log: log}
}

// Index opens the console on its current tab.
func (h *AdminHandler) Index(c echo.Context) error {
	con := h.console(c)
	return c.Redirect(http.StatusSeeOther, "/admin/"+string(con.Active()))
}

// Show renders one tab, loading its data when the tab is entered.
func (h *AdminHandler) Show(c echo.Context) error {
	con, tab, err := h.tab(c)
	if err != nil {
		return err
	}
	if err := con.Open(c.Request().Context(), tab); err != nil {
		h.log.Warn().Err(err).Str("tab", string(tab)).Msg("load console tab")
	}

	page := AdminPage{
		Title:    "Admin Dashboard",
		MockMode: h.mock,
		User:     con.User,
		Active:   tab,
		Tabs:     console.Tabs,
	}
	switch tab {
	case console.TabProjects:
		v := con.Projects.View()
		page.Projects = &v
	case console.TabProducts:
		v := con.Products.View()
		page.Products = &v
	case console.TabInquiries:
		v := con.Inquiries.View()
		page.Inquiries = &v
	case console.TabProfile:
		v := con.Profile.View()
		page.Profile = &v
	}
	return c.Render(http.StatusOK, adminTemplate, page)
}

// ToggleForm opens or closes the create form of the projects or products tab.
func (h *AdminHandler) ToggleForm(c echo.Context) error {
	con, tab, err := h.tab(c)
	if err != nil {
		return err
	}
	panel, err := formPanelOf(con, tab)
	if err != nil {
		return err
	}
	panel.ToggleForm()
	return back(c, tab)
}

// Submit handles the tab form. action=upload sends the chosen image, action=create or
// action=save submits the record. Text fields are kept in either case.
func (h *AdminHandler) Submit(c echo.Context) error {
	con, tab, err := h.tab(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	action := c.FormValue("action")

	switch tab {
	case console.TabProjects:
		con.Projects.SetFields(console.ProjectForm{
			Title:       c.FormValue("title"),
			Category:    c.FormValue("category"),
			Description: c.FormValue("description"),
		})
	case console.TabProducts:
		con.Products.SetFields(console.ProductForm{
			Title:        c.FormValue("title"),
			Price:        c.FormValue("price"),
			PurchaseLink: c.FormValue("purchase_link"),
		})
	case console.TabProfile:
		con.Profile.SetFields(console.ProfileForm{
			FullName: c.FormValue("full_name"),
			Headline: c.FormValue("headline"),
			Bio:      c.FormValue("bio"),
		})
	default:
		return echo.NewHTTPError(http.StatusNotFound, apperrors.ErrorResponse{Error: "tab has no form", Code: "NOT_FOUND"})
	}

	switch action {
	case "upload":
		file, ok, err := h.formFile(c)
		if err != nil {
			return err
		}
		if !ok {
			return back(c, tab)
		}
		var uploadErr error
		if tab == console.TabProfile {
			uploadErr = con.Profile.Upload(ctx, file)
		} else {
			panel, _ := formPanelOf(con, tab)
			uploadErr = panel.Upload(ctx, file)
		}
		metrics.RecordUpload(bucketOf(tab), uploadErr == nil)
		if uploadErr != nil {
			h.log.Warn().Err(uploadErr).Str("tab", string(tab)).Msg("upload image")
		}
	case "save", "create":
		if tab == console.TabProfile {
			err = con.Profile.Save(ctx)
		} else {
			panel, _ := formPanelOf(con, tab)
			err = panel.Submit(ctx)
		}
		if err != nil && !errors.Is(err, console.ErrUploadInFlight) && !errors.Is(err, console.ErrBusy) &&
			!errors.Is(err, console.ErrFormClosed) {
			h.log.Warn().Err(err).Str("tab", string(tab)).Msg("submit console form")
		}
	default:
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{Error: "unknown action", Code: "INVALID_REQUEST"})
	}
	return back(c, tab)
}

// RequestDelete asks for confirmation before deleting :id.
func (h *AdminHandler) RequestDelete(c echo.Context) error {
	con, tab, err := h.tab(c)
	if err != nil {
		return err
	}
	panel, err := formPanelOf(con, tab)
	if err != nil {
		return err
	}
	panel.RequestDelete(c.Param("id"))
	return back(c, tab)
}

func (h *AdminHandler) ConfirmDelete(c echo.Context) error {
	con, tab, err := h.tab(c)
	if err != nil {
		return err
	}
	panel, err := formPanelOf(con, tab)
	if err != nil {
		return err
	}
	if err := panel.ConfirmDelete(c.Request().Context()); err != nil && !errors.Is(err, console.ErrNoPendingDelete) {
		h.log.Warn().Err(err).Str("tab", string(tab)).Msg("delete record")
	}
	return back(c, tab)
}

func (h *AdminHandler) CancelDelete(c echo.Context) error {
	con, tab, err := h.tab(c)
	if err != nil {
		return err
	}
	panel, err := formPanelOf(con, tab)
	if err != nil {
		return err
	}
	panel.CancelDelete()
	return back(c, tab)
}

// DismissAlert clears the alert of the projects or products tab.
func (h *AdminHandler) DismissAlert(c echo.Context) error {
	con, tab, err := h.tab(c)
	if err != nil {
		return err
	}
	panel, err := formPanelOf(con, tab)
	if err != nil {
		return err
	}
	panel.DismissAlert()
	return back(c, tab)
}

func (h *AdminHandler) console(c echo.Context) *console.Console {
	return h.consoles.Get(sessionID(c), sessionUser(c))
}

func (h *AdminHandler) tab(c echo.Context) (*console.Console, console.Tab, error) {
	tab, err := console.ParseTab(c.Param("tab"))
	if err != nil {
		return nil, "", echo.NewHTTPError(http.StatusNotFound, apperrors.ErrorResponse{Error: err.Error(), Code: "NOT_FOUND"})
	}
	return h.console(c), tab, nil
}

// formFile reads the "file" part. ok is false when no file was chosen.
func (h *AdminHandler) formFile(c echo.Context) (storage.File, bool, error) {
	fh, err := c.FormFile("file")
	if errors.Is(err, http.ErrMissingFile) {
		return storage.File{}, false, nil
	}
	if err != nil {
		return storage.File{}, false, echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{Error: "invalid upload", Code: "INVALID_REQUEST"})
	}
	f, err := fh.Open()
	if err != nil {
		return storage.File{}, false, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	// one byte over the limit is enough for the size check to reject it
	data, err := io.ReadAll(io.LimitReader(f, h.maxUpload+1))
	if err != nil {
		return storage.File{}, false, fmt.Errorf("read upload: %w", err)
	}
	return storage.File{Name: fh.Filename, ContentType: fh.Header.Get(echo.HeaderContentType), Data: data}, true, nil
}

func formPanelOf(con *console.Console, tab console.Tab) (formPanel, error) {
	switch tab {
	case console.TabProjects:
		return con.Projects, nil
	case console.TabProducts:
		return con.Products, nil
	}
	return nil, echo.NewHTTPError(http.StatusNotFound, apperrors.ErrorResponse{Error: "tab has no records to manage", Code: "NOT_FOUND"})
}

func bucketOf(tab console.Tab) string {
	switch tab {
	case console.TabProjects:
		return storage.BucketProjects
	case console.TabProducts:
		return storage.BucketProducts
	}
	return storage.BucketAvatars
}

func back(c echo.Context, tab console.Tab) error {
	return c.Redirect(http.StatusSeeOther, "/admin/"+string(tab))
}
