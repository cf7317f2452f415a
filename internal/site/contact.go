package site

import (
	"context"
	"errors"
	"net/url"
	"strings"

	apperrors "lumina/internal/errors"
	"lumina/internal/model"
	"lumina/internal/service"
)

// ContactFailedMessage is the alert shown when an inquiry could not be stored.
const ContactFailedMessage = "Failed to send message."

// ErrAlreadySent blocks resubmitting a form that went through.
var ErrAlreadySent = errors.New("message already sent")

// ContactState tracks the contact form.
type ContactState int

const (
	ContactIdle ContactState = iota
	ContactSending
	ContactSent
	ContactFailed
)

// ServiceOption is one entry of the service type select.
type ServiceOption struct {
	Value string
	Label string
}

// ServiceTypes offered by the contact form; the first is preselected.
var ServiceTypes = []ServiceOption{
	{Value: model.DefaultServiceType, Label: "General Inquiry"},
	{Value: "Branding Project", Label: "Branding Project"},
	{Value: "Web Design", Label: "Web Design"},
	{Value: "Other", Label: "Other"},
}

// ContactForm is what a visitor typed.
type ContactForm struct {
	Name        string
	Email       string
	ServiceType string
	Message     string
}

// ParseContactForm reads posted values. A missing service_type field means the
// default; a present but blank one is left blank and fails validation.
func ParseContactForm(values url.Values) ContactForm {
	f := ContactForm{
		Name:        strings.TrimSpace(values.Get("name")),
		Email:       strings.TrimSpace(values.Get("email")),
		ServiceType: strings.TrimSpace(values.Get("service_type")),
		Message:     strings.TrimSpace(values.Get("message")),
	}
	if !values.Has("service_type") {
		f.ServiceType = model.DefaultServiceType
	}
	return f
}

// Contact is the state of one contact form.
type Contact struct {
	State   ContactState
	Form    ContactForm
	Missing []string
	Alert   string
}

func NewContact() Contact {
	return Contact{Form: ContactForm{ServiceType: model.DefaultServiceType}}
}

// Disabled reports whether the submit control must be disabled.
func (c Contact) Disabled() bool {
	return c.State == ContactSending || c.State == ContactSent
}

// Sent reports whether the message went through.
func (c Contact) Sent() bool {
	return c.State == ContactSent
}

// Sending reports whether a submit is in flight.
func (c Contact) Sending() bool {
	return c.State == ContactSending
}

// IsMissing reports whether field was left blank on the last submit.
func (c Contact) IsMissing(field string) bool {
	for _, f := range c.Missing {
		if f == field {
			return true
		}
	}
	return false
}

// Submit validates the form and stores it as an inquiry. Nothing is sent while a
// required field is blank.
func (c *Contact) Submit(ctx context.Context, inquiries service.InquiryService, form ContactForm) error {
	if c.Disabled() {
		return ErrAlreadySent
	}
	c.Form = form
	c.Alert = ""
	c.Missing = nil

	if err := apperrors.Required([]string{"name", "email", "service_type", "message"}, map[string]string{
		"name":         form.Name,
		"email":        form.Email,
		"service_type": form.ServiceType,
		"message":      form.Message,
	}); err != nil {
		var verr *apperrors.ValidationError
		if errors.As(err, &verr) {
			c.Missing = verr.Fields
		}
		c.State = ContactIdle
		return err
	}

	c.State = ContactSending
	_, err := inquiries.Create(ctx, model.InquiryInput{
		ClientName:  form.Name,
		Email:       form.Email,
		ServiceType: form.ServiceType,
		Message:     form.Message,
	})
	if err != nil {
		c.State = ContactFailed
		c.Alert = ContactFailedMessage
		return err
	}
	c.State = ContactSent
	c.Form = ContactForm{ServiceType: model.DefaultServiceType}
	return nil
}
