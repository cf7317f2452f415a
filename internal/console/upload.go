package console

import (
	"context"
	"sync"

	"lumina/internal/service"
	"lumina/internal/storage"
)

// UploadHooks let the owning form follow an upload.
type UploadHooks struct {
	Started    func()
	URLChanged func(url string)
	Finished   func()
}

// UploadWidget uploads one image at a time into a fixed bucket. The URL it produces is
// owned by the parent form; the widget only tracks its busy flag and last alert.
type UploadWidget struct {
	bucket   string
	uploader service.UploadService
	hooks    UploadHooks

	mu    sync.Mutex
	busy  bool
	alert string
}

// UploadView is what the form renders for the image field.
type UploadView struct {
	Bucket     string
	Busy       bool
	URL        string
	HasImage   bool
	ChangeHint string
	Alert      string
}

func NewUploadWidget(bucket string, uploader service.UploadService, hooks UploadHooks) *UploadWidget {
	return &UploadWidget{bucket: bucket, uploader: uploader, hooks: hooks}
}

// Upload sends file to storage. On failure the bound URL is left alone and the alert
// carries the error detail. Finished fires either way.
func (w *UploadWidget) Upload(ctx context.Context, file storage.File) error {
	w.mu.Lock()
	w.busy = true
	w.alert = ""
	w.mu.Unlock()
	call(w.hooks.Started)

	url, err := w.uploader.Upload(ctx, w.bucket, file)

	w.mu.Lock()
	w.busy = false
	if err != nil {
		w.alert = "Error uploading image: " + err.Error()
	}
	w.mu.Unlock()

	if err == nil && w.hooks.URLChanged != nil {
		w.hooks.URLChanged(url)
	}
	call(w.hooks.Finished)
	return err
}

// ClearAlert drops the last upload error.
func (w *UploadWidget) ClearAlert() {
	w.mu.Lock()
	w.alert = ""
	w.mu.Unlock()
}

func (w *UploadWidget) View(boundURL string) UploadView {
	w.mu.Lock()
	defer w.mu.Unlock()
	v := UploadView{
		Bucket:   w.bucket,
		Busy:     w.busy,
		URL:      boundURL,
		HasImage: boundURL != "",
		Alert:    w.alert,
	}
	if v.HasImage {
		v.ChangeHint = "Click to change"
	}
	return v
}

func call(fn func()) {
	if fn != nil {
		fn()
	}
}
