package backend

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lumina/internal/auth"
	"lumina/internal/config"
	"lumina/internal/model"
	"lumina/internal/repository/memory"
	"lumina/internal/storage"
)

func TestOpen_Mock(t *testing.T) {
	cfg := &config.Config{Backend: config.BackendConfig{Mode: config.ModeMock}}

	b, err := Open(context.Background(), cfg)
	require.NoError(t, err)
	defer b.Close()

	assert.Equal(t, config.ModeMock, b.Mode)
	assert.IsType(t, storage.PlaceholderUploader{}, b.Uploader)
	assert.IsType(t, &auth.MemoryTokenStore{}, b.Tokens)
	assert.Empty(t, b.UploadDir)

	projects, err := b.Projects.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, projects, 4)

	admin, err := b.Users.FindByEmail(context.Background(), memory.MockAdminEmail)
	require.NoError(t, err)
	assert.NotEmpty(t, admin.ID)
}

func TestOpen_Live(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	dir := t.TempDir()
	cfg := &config.Config{
		Backend: config.BackendConfig{Mode: config.ModeLive, DatabaseURL: "sqlite:" + filepath.Join(dir, "lumina.db")},
		Redis:   config.RedisConfig{Addr: mr.Addr()},
		Storage: config.StorageConfig{Dir: filepath.Join(dir, "uploads")},
	}
	ctx := context.Background()

	b, err := Open(ctx, cfg)
	require.NoError(t, err)
	defer b.Close()

	assert.Equal(t, config.ModeLive, b.Mode)
	assert.IsType(t, &auth.TokenStore{}, b.Tokens)
	assert.Equal(t, cfg.Storage.Dir, b.UploadDir)

	projects, err := b.Projects.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, projects)

	require.NoError(t, b.Projects.Create(ctx, &model.Project{Title: "Neon Drift", Category: "Branding", ImageURL: "x"}))
	projects, err = b.Projects.List(ctx)
	require.NoError(t, err)
	assert.Len(t, projects, 1)

	url, err := b.Uploader.Upload(ctx, storage.BucketAvatars, storage.File{Name: "me.png", Data: []byte("x")})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, UploadsPath+"/avatars/"))
}

func TestOpen_LiveNeedsRedis(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	addr := mr.Addr()
	mr.Close()

	cfg := &config.Config{
		Backend: config.BackendConfig{Mode: config.ModeLive, DatabaseURL: "sqlite:" + filepath.Join(t.TempDir(), "lumina.db")},
		Redis:   config.RedisConfig{Addr: addr},
	}
	_, err = Open(context.Background(), cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "redis")
}
