package console

import (
	"context"
	"sync"

	apperrors "lumina/internal/errors"
	"lumina/internal/service"
	"lumina/internal/storage"
)

type collection[T, In any] interface {
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, in In) (*T, error)
	Delete(ctx context.Context, id string) error
}

// formSpec adapts a concrete form type to the shared create flow.
type formSpec[T, F, In any] struct {
	noun        string
	createLabel string
	id          func(T) string
	imageURL    func(F) string
	setImageURL func(*F, string)
	input       func(F) (In, error)
}

// crudManager is the list + inline create form + confirmed delete panel shared by
// projects and products. The lock is never held across a backend call.
type crudManager[T, F, In any] struct {
	svc    collection[T, In]
	spec   formSpec[T, F, In]
	widget *UploadWidget

	mu            sync.Mutex
	state         State
	items         []T
	form          F
	uploading     bool
	loading       bool
	alert         string
	pendingDelete string
}

// CRUDView is the render state of a projects or products panel.
type CRUDView[T, F any] struct {
	Items         []T
	State         State
	FormOpen      bool
	Form          F
	Uploading     bool
	Loading       bool
	CanSubmit     bool
	SubmitLabel   string
	ToggleLabel   string
	Alert         string
	PendingDelete string
	Upload        UploadView
}

func newCRUDManager[T, F, In any](svc collection[T, In], uploads service.UploadService, bucket string, spec formSpec[T, F, In]) *crudManager[T, F, In] {
	m := &crudManager[T, F, In]{svc: svc, spec: spec}
	m.widget = NewUploadWidget(bucket, uploads, UploadHooks{
		Started: func() {
			m.mu.Lock()
			m.uploading = true
			m.mu.Unlock()
		},
		URLChanged: func(url string) {
			m.mu.Lock()
			m.spec.setImageURL(&m.form, url)
			m.mu.Unlock()
		},
		Finished: func() {
			m.mu.Lock()
			m.uploading = false
			m.mu.Unlock()
		},
	})
	return m
}

// Mount loads the list.
func (m *crudManager[T, F, In]) Mount(ctx context.Context) error {
	return m.reload(ctx)
}

func (m *crudManager[T, F, In]) reload(ctx context.Context) error {
	m.mu.Lock()
	m.loading = true
	m.mu.Unlock()

	items, err := m.svc.List(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.loading = false
	if err != nil {
		m.alert = "Error loading " + m.spec.noun + "s: " + err.Error()
		return err
	}
	m.items = items
	return nil
}

// ToggleForm opens or closes the inline create form. Entered values survive a close.
func (m *crudManager[T, F, In]) ToggleForm() {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch m.state {
	case Submitting:
	case FormOpen, Error:
		m.state = Idle
		m.alert = ""
	default:
		m.state = FormOpen
	}
}

// SetFields takes the text fields of f. The image URL is only ever bound by an upload.
func (m *crudManager[T, F, In]) SetFields(f F) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == Submitting {
		return
	}
	url := m.spec.imageURL(m.form)
	m.form = f
	m.spec.setImageURL(&m.form, url)
}

// Upload runs the image widget for the open form.
func (m *crudManager[T, F, In]) Upload(ctx context.Context, file storage.File) error {
	return m.widget.Upload(ctx, file)
}

// Submit creates a record from the open form. While an upload runs or the image URL is
// empty nothing reaches the backend. On failure the form stays open with its values.
func (m *crudManager[T, F, In]) Submit(ctx context.Context) error {
	m.mu.Lock()
	switch m.state {
	case Submitting:
		m.mu.Unlock()
		return ErrBusy
	case Idle:
		m.mu.Unlock()
		return ErrFormClosed
	}
	if m.uploading {
		m.mu.Unlock()
		return ErrUploadInFlight
	}
	if m.spec.imageURL(m.form) == "" {
		m.mu.Unlock()
		return &apperrors.ValidationError{Fields: []string{"image_url"}}
	}
	in, err := m.spec.input(m.form)
	if err != nil {
		m.state = Error
		m.alert = err.Error()
		m.mu.Unlock()
		return err
	}
	m.state = Submitting
	m.alert = ""
	m.mu.Unlock()

	_, err = m.svc.Create(ctx, in)

	m.mu.Lock()
	if err != nil {
		m.state = Error
		m.alert = "Error creating " + m.spec.noun + ": " + err.Error()
		m.mu.Unlock()
		return err
	}
	var empty F
	m.form = empty
	m.state = Idle
	m.mu.Unlock()
	m.widget.ClearAlert()

	return m.reload(ctx)
}

// RequestDelete marks a listed record for deletion; nothing happens until ConfirmDelete.
// Unknown ids are ignored.
func (m *crudManager[T, F, In]) RequestDelete(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, item := range m.items {
		if m.spec.id(item) == id {
			m.pendingDelete = id
			return
		}
	}
}

func (m *crudManager[T, F, In]) CancelDelete() {
	m.mu.Lock()
	m.pendingDelete = ""
	m.mu.Unlock()
}

// ConfirmDelete deletes the pending record and reloads the list.
func (m *crudManager[T, F, In]) ConfirmDelete(ctx context.Context) error {
	m.mu.Lock()
	id := m.pendingDelete
	m.pendingDelete = ""
	m.mu.Unlock()
	if id == "" {
		return ErrNoPendingDelete
	}

	if err := m.svc.Delete(ctx, id); err != nil {
		m.mu.Lock()
		m.alert = "Error deleting " + m.spec.noun + ": " + err.Error()
		m.mu.Unlock()
		return err
	}
	return m.reload(ctx)
}

// DismissAlert clears the panel alert and leaves the Error state for the open form.
func (m *crudManager[T, F, In]) DismissAlert() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.alert = ""
	if m.state == Error {
		m.state = FormOpen
	}
	m.widget.ClearAlert()
}

func (m *crudManager[T, F, In]) View() CRUDView[T, F] {
	m.mu.Lock()
	defer m.mu.Unlock()

	url := m.spec.imageURL(m.form)
	v := CRUDView[T, F]{
		Items:         append([]T(nil), m.items...),
		State:         m.state,
		FormOpen:      m.state != Idle,
		Form:          m.form,
		Uploading:     m.uploading,
		Loading:       m.loading,
		CanSubmit:     m.state != Submitting && !m.uploading && url != "",
		Alert:         m.alert,
		PendingDelete: m.pendingDelete,
		ToggleLabel:   "New " + m.spec.createLabel,
	}
	if v.FormOpen {
		v.ToggleLabel = "Cancel"
	}
	switch {
	case m.uploading:
		v.SubmitLabel = "Uploading Image..."
	case m.state == Submitting:
		v.SubmitLabel = "Saving..."
	default:
		v.SubmitLabel = "Create " + m.spec.createLabel
	}
	v.Upload = m.widget.View(url)
	return v
}
