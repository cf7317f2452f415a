package storage

import (
	"context"
	"fmt"
	"math/rand/v2"
)

// PlaceholderUploader discards the file and hands back a random stock image.
type PlaceholderUploader struct{}

func (PlaceholderUploader) Upload(_ context.Context, _ string, _ File) (string, error) {
	return fmt.Sprintf("https://picsum.photos/800/600?random=%d", rand.IntN(1000)), nil
}
