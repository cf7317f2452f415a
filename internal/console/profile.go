package console

import (
	"context"
	"errors"
	"sync"
	"time"

	"lumina/internal/model"
	"lumina/internal/service"
	"lumina/internal/storage"
)

// BannerDuration is how long a save result stays on screen.
const BannerDuration = 3 * time.Second

var errNoProfile = errors.New("no profile found for this account")

// ProfileForm holds the editable profile fields.
type ProfileForm struct {
	FullName  string
	Headline  string
	Bio       string
	AvatarURL string
}

// Banner is the transient save result.
type Banner struct {
	Success bool
	Text    string
}

// ProfileManager is the Profile tab for the signed-in user.
type ProfileManager struct {
	svc    service.ProfileService
	userID string
	now    func() time.Time
	widget *UploadWidget

	mu          sync.Mutex
	profile     *model.Profile
	form        ProfileForm
	loading     bool
	saving      bool
	uploading   bool
	banner      *Banner
	bannerUntil time.Time
}

type ProfileView struct {
	Found     bool
	Email     string
	Form      ProfileForm
	Loading   bool
	Saving    bool
	Uploading bool
	CanSave   bool
	SaveLabel string
	Banner    *Banner
	Upload    UploadView
}

func NewProfileManager(svc service.ProfileService, uploads service.UploadService, userID string) *ProfileManager {
	m := &ProfileManager{svc: svc, userID: userID, now: time.Now}
	m.widget = NewUploadWidget(storage.BucketAvatars, uploads, UploadHooks{
		Started: func() {
			m.mu.Lock()
			m.uploading = true
			m.mu.Unlock()
		},
		URLChanged: func(url string) {
			m.mu.Lock()
			m.form.AvatarURL = url
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

// Mount loads the profile and binds its fields to the form.
func (m *ProfileManager) Mount(ctx context.Context) error {
	m.mu.Lock()
	m.loading = true
	m.mu.Unlock()

	profile, err := m.svc.Mine(ctx, m.userID)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.loading = false
	if err != nil {
		m.setBanner(false, "Error loading profile: "+err.Error())
		return err
	}
	m.profile = profile
	if profile != nil {
		m.form = ProfileForm{
			FullName:  profile.FullName,
			Headline:  profile.Headline,
			Bio:       profile.Bio,
			AvatarURL: profile.AvatarURL,
		}
	}
	return nil
}

// SetFields takes the text fields of f; the avatar is only bound by an upload.
func (m *ProfileManager) SetFields(f ProfileForm) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saving {
		return
	}
	f.AvatarURL = m.form.AvatarURL
	m.form = f
}

func (m *ProfileManager) Upload(ctx context.Context, file storage.File) error {
	return m.widget.Upload(ctx, file)
}

// Save writes the whole editable set and shows a banner for BannerDuration.
func (m *ProfileManager) Save(ctx context.Context) error {
	m.mu.Lock()
	if m.saving {
		m.mu.Unlock()
		return ErrBusy
	}
	if m.uploading {
		m.mu.Unlock()
		return ErrUploadInFlight
	}
	if m.profile == nil {
		m.setBanner(false, "Error updating profile: "+errNoProfile.Error())
		m.mu.Unlock()
		return errNoProfile
	}
	id := m.profile.ID
	form := m.form
	m.saving = true
	m.mu.Unlock()

	update := model.ProfileUpdate{
		FullName:  &form.FullName,
		Headline:  &form.Headline,
		Bio:       &form.Bio,
		AvatarURL: &form.AvatarURL,
	}
	err := m.svc.Update(ctx, id, update)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.saving = false
	if err != nil {
		m.setBanner(false, "Error updating profile: "+err.Error())
		return err
	}
	update.Apply(m.profile)
	m.setBanner(true, "Profile updated successfully!")
	return nil
}

func (m *ProfileManager) setBanner(success bool, text string) {
	m.banner = &Banner{Success: success, Text: text}
	m.bannerUntil = m.now().Add(BannerDuration)
}

func (m *ProfileManager) View() ProfileView {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.banner != nil && !m.now().Before(m.bannerUntil) {
		m.banner = nil
	}
	v := ProfileView{
		Found:     m.profile != nil,
		Form:      m.form,
		Loading:   m.loading,
		Saving:    m.saving,
		Uploading: m.uploading,
		CanSave:   m.profile != nil && !m.saving && !m.uploading,
		SaveLabel: "Save Changes",
		Banner:    m.banner,
		Upload:    m.widget.View(m.form.AvatarURL),
	}
	if m.profile != nil {
		v.Email = m.profile.Email
	}
	switch {
	case m.uploading:
		v.SaveLabel = "Uploading Image..."
	case m.saving:
		v.SaveLabel = "Saving..."
	}
	return v
}
