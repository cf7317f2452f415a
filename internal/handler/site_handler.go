package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	apperrors "lumina/internal/errors"
	"lumina/internal/metrics"
	"lumina/internal/service"
	"lumina/internal/site"
)

const siteTitle = "Mikhail Gerges | Graphic Designer"

// SiteHandler serves the public landing page and its contact form.
type SiteHandler struct {
	loader    *site.Loader
	inquiries service.InquiryService
	mock      bool
	log       zerolog.Logger
}

func NewSiteHandler(loader *site.Loader, inquiries service.InquiryService, mock bool, log zerolog.Logger) *SiteHandler {
	return &SiteHandler{loader: loader, inquiries: inquiries, mock: mock, log: log}
}

// Home renders the landing page. ?sent=1 shows the contact form in its sent state.
func (h *SiteHandler) Home(c echo.Context) error {
	home := h.loader.LoadHome(c.Request().Context())
	if c.QueryParam("sent") == "1" {
		home.Contact.State = site.ContactSent
	}
	return c.Render(http.StatusOK, homeTemplate, HomePage{Title: siteTitle, MockMode: h.mock, Home: home})
}

// Contact stores a contact form submission. Success redirects back to the form so a
// reload does not resubmit; validation and backend failures re-render it with the
// typed values.
func (h *SiteHandler) Contact(c echo.Context) error {
	ctx := c.Request().Context()
	values, err := c.FormParams()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{Error: "invalid form", Code: "INVALID_REQUEST"})
	}

	contact := site.NewContact()
	err = contact.Submit(ctx, h.inquiries, site.ParseContactForm(values))
	switch {
	case err == nil:
		metrics.RecordInquiry("sent")
		return c.Redirect(http.StatusSeeOther, "/?sent=1#contact")
	case errors.Is(err, apperrors.ErrValidation):
		metrics.RecordInquiry("invalid")
	default:
		metrics.RecordInquiry("failed")
		h.log.Error().Err(err).Msg("store inquiry")
	}

	status := http.StatusUnprocessableEntity
	if contact.State == site.ContactFailed {
		status = http.StatusInternalServerError
	}
	home := h.loader.LoadHome(ctx)
	home.Contact = contact
	return c.Render(status, homeTemplate, HomePage{Title: siteTitle, MockMode: h.mock, Home: home})
}
