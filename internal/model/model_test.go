package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProfileUpdate_Columns(t *testing.T) {
	name := "Mikhail"
	bio := ""
	upd := ProfileUpdate{FullName: &name, Bio: &bio}

	assert.Equal(t, map[string]interface{}{"full_name": "Mikhail", "bio": ""}, upd.Columns())
	assert.Empty(t, ProfileUpdate{}.Columns())
}

func TestProfileUpdate_Apply(t *testing.T) {
	headline := "Senior Graphic Designer"
	p := &Profile{ID: "u1", FullName: "Old", Headline: "Old headline"}

	ProfileUpdate{Headline: &headline}.Apply(p)

	assert.Equal(t, "Old", p.FullName)
	assert.Equal(t, "Senior Graphic Designer", p.Headline)
}

func TestBeforeCreateKeepsExistingID(t *testing.T) {
	p := &Project{ID: "fixed"}
	assert.NoError(t, p.BeforeCreate(nil))
	assert.Equal(t, "fixed", p.ID)

	q := &Product{}
	assert.NoError(t, q.BeforeCreate(nil))
	assert.NotEmpty(t, q.ID)
}
