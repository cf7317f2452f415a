package model

import "time"

// Profile holds the public-facing details of the site owner. Its ID equals the owning
// User's ID.
type Profile struct {
	ID        string    `json:"id" gorm:"type:varchar(36);primaryKey"`
	Email     string    `json:"email" gorm:"size:255;not null"`
	FullName  string    `json:"full_name,omitempty" gorm:"size:255"`
	Headline  string    `json:"headline,omitempty" gorm:"size:255"`
	Bio       string    `json:"bio,omitempty" gorm:"type:text"`
	AvatarURL string    `json:"avatar_url,omitempty" gorm:"size:1024"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// ProfileUpdate is a partial update; nil fields are left untouched.
type ProfileUpdate struct {
	FullName  *string `json:"full_name,omitempty"`
	Headline  *string `json:"headline,omitempty"`
	Bio       *string `json:"bio,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}

// Columns returns the column/value pairs that are set.
func (u ProfileUpdate) Columns() map[string]interface{} {
	cols := map[string]interface{}{}
	if u.FullName != nil {
		cols["full_name"] = *u.FullName
	}
	if u.Headline != nil {
		cols["headline"] = *u.Headline
	}
	if u.Bio != nil {
		cols["bio"] = *u.Bio
	}
	if u.AvatarURL != nil {
		cols["avatar_url"] = *u.AvatarURL
	}
	return cols
}

// Apply copies the set fields onto p.
func (u ProfileUpdate) Apply(p *Profile) {
	if u.FullName != nil {
		p.FullName = *u.FullName
	}
	if u.Headline != nil {
		p.Headline = *u.Headline
	}
	if u.Bio != nil {
		p.Bio = *u.Bio
	}
	if u.AvatarURL != nil {
		p.AvatarURL = *u.AvatarURL
	}
}
