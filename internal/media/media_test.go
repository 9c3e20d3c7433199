package media

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/basupportii/ai-router/pkg/provider"
	"github.com/basupportii/ai-router/pkg/provider/types"
	"github.com/stretchr/testify/require"
)

type fakeImageModel struct {
	image []byte
	err   error
}

func (f *fakeImageModel) SpecificationVersion() string { return "v3" }
func (f *fakeImageModel) Provider() string             { return "fake" }
func (f *fakeImageModel) ModelID() string              { return "fake-image" }

func (f *fakeImageModel) DoGenerate(ctx context.Context, opts *provider.ImageGenerateOptions) (*types.ImageResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &types.ImageResult{
		Image:    f.image,
		MimeType: "image/png",
		Usage:    types.ImageUsage{ImageCount: 1},
	}, nil
}

func TestGenerateImage_WritesArtifactToOutputsDir(t *testing.T) {
	dir := t.TempDir()
	model := &fakeImageModel{image: []byte("fake-png-bytes")}
	gen := NewGenerator(model, "", dir)

	artifact, err := gen.GenerateImage(context.Background(), "a red bicycle", nil)
	require.NoError(t, err)
	require.Equal(t, "image/png", artifact.MimeType)
	require.FileExists(t, artifact.Path)
	require.Equal(t, filepath.Dir(artifact.Path), dir)

	data, err := os.ReadFile(artifact.Path)
	require.NoError(t, err)
	require.Equal(t, "fake-png-bytes", string(data))
}

func TestGenerateImage_NoModelConfiguredFails(t *testing.T) {
	gen := NewGenerator(nil, "", t.TempDir())
	_, err := gen.GenerateImage(context.Background(), "anything", nil)
	require.Error(t, err)
}

func TestGenerateImage_EmptyResultFails(t *testing.T) {
	model := &fakeImageModel{image: nil}
	gen := NewGenerator(model, "", t.TempDir())
	_, err := gen.GenerateImage(context.Background(), "anything", nil)
	require.Error(t, err)
}

func TestGenerateVideo_NoFFmpegConfiguredFails(t *testing.T) {
	gen := NewGenerator(nil, "", t.TempDir())
	_, err := gen.GenerateVideo(context.Background(), "a sunset timelapse", nil)
	require.Error(t, err)
}

func TestExtensionFor_KnownAndFallbackMimeTypes(t *testing.T) {
	require.Equal(t, ".jpg", extensionFor("image/jpeg", ".png"))
	require.Equal(t, ".webp", extensionFor("image/webp", ".png"))
	require.Equal(t, ".bin", extensionFor("application/octet-stream", ".bin"))
}
