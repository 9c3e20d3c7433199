// Package media implements the router's image and video generation
// collaborator (spec.md §1, §6 /api/image and /api/video): it drives a
// provider.ImageModel for stills and shells out to an external frame
// tool for video, then persists the result under outputs/ the way the
// teacher's pkg/internal/fileutil bounds a remote download.
package media

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/basupportii/ai-router/internal/routererr"
	"github.com/basupportii/ai-router/pkg/internal/fileutil"
	"github.com/basupportii/ai-router/pkg/provider"
)

// maxArtifactBytes mirrors fileutil's size-cap rationale: a runaway
// model response or frame tool should fail loudly, not exhaust memory
// or disk.
const maxArtifactBytes = 512 * 1024 * 1024 // 512 MiB

// videoTimeout is the hard kill timer for the external frame tool.
const videoTimeout = 120 * time.Second

// Generator produces image and video artifacts and writes them to the
// configured outputs directory.
type Generator struct {
	ImageModel  provider.ImageModel
	FFmpegPath  string
	OutputsDir  string
}

// NewGenerator constructs a Generator. ffmpegPath and outputsDir come
// from config.Config's FFmpegPath and DataDir/outputs respectively.
func NewGenerator(imageModel provider.ImageModel, ffmpegPath, outputsDir string) *Generator {
	return &Generator{ImageModel: imageModel, FFmpegPath: ffmpegPath, OutputsDir: outputsDir}
}

// Artifact describes a generated file on disk.
type Artifact struct {
	Path     string
	MimeType string
	Bytes    int
}

// GenerateImage renders prompt via the configured image model and
// writes the result to outputs/image-<timestamp>.<ext>.
func (g *Generator) GenerateImage(ctx context.Context, prompt string, opts *provider.ImageGenerateOptions) (*Artifact, error) {
	if g.ImageModel == nil {
		return nil, routererr.New(routererr.KindUpstreamUnavailable, "no image model configured")
	}
	if opts == nil {
		opts = &provider.ImageGenerateOptions{}
	}
	opts.Prompt = prompt

	result, err := g.ImageModel.DoGenerate(ctx, opts)
	if err != nil {
		return nil, routererr.Wrap(routererr.KindBackendError, "image generation failed", err)
	}
	if len(result.Image) == 0 && result.URL != "" {
		data, derr := fileutil.Download(ctx, result.URL, fileutil.DefaultDownloadOptions())
		if derr != nil {
			return nil, routererr.Wrap(routererr.KindBackendError, "failed to fetch generated image", derr)
		}
		result.Image = data
	}
	if len(result.Image) == 0 {
		return nil, routererr.New(routererr.KindBackendError, "image model returned no data")
	}
	if len(result.Image) > maxArtifactBytes {
		return nil, routererr.New(routererr.KindBackendError, "generated image exceeded size cap")
	}

	mimeType := result.MimeType
	if mimeType == "" {
		mimeType = fileutil.DetectMediaType(result.Image).MimeType
	}
	ext := extensionFor(mimeType, ".png")
	return g.writeArtifact("image", ext, mimeType, result.Image)
}

// GenerateVideo renders a short clip from prompt by invoking the
// external frame tool (ffmpeg) and writes the result to
// outputs/video-<timestamp>.mp4. The frame tool receives the prompt on
// stdin and is expected to emit the finished container on stdout.
func (g *Generator) GenerateVideo(ctx context.Context, prompt string, frameArgs []string) (*Artifact, error) {
	if g.FFmpegPath == "" {
		return nil, routererr.New(routererr.KindUpstreamUnavailable, "no video frame tool configured")
	}

	runCtx, cancel := context.WithTimeout(ctx, videoTimeout)
	defer cancel()

	args := append([]string{}, frameArgs...)
	cmd := exec.CommandContext(runCtx, g.FFmpegPath, args...)
	cmd.Stdin = strings.NewReader(prompt)
	output, err := cmd.Output()
	if runCtx.Err() == context.DeadlineExceeded {
		return nil, routererr.New(routererr.KindSandboxTimeout, g.FFmpegPath+" exceeded "+videoTimeout.String())
	}
	if err != nil {
		return nil, routererr.Wrap(routererr.KindSandboxError, "video rendering failed", err)
	}
	if len(output) == 0 {
		return nil, routererr.New(routererr.KindBackendError, "video tool produced no output")
	}
	if len(output) > maxArtifactBytes {
		return nil, routererr.New(routererr.KindBackendError, "generated video exceeded size cap")
	}

	return g.writeArtifact("video", ".mp4", "video/mp4", output)
}

func (g *Generator) writeArtifact(kind, ext, mimeType string, data []byte) (*Artifact, error) {
	dir := g.OutputsDir
	if dir == "" {
		dir = "outputs"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, routererr.Wrap(routererr.KindBackendError, "failed to create outputs directory", err)
	}

	name := fmt.Sprintf("%s-%s%s", kind, isoTimestamp(), ext)
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, routererr.Wrap(routererr.KindBackendError, "failed to write artifact", err)
	}
	return &Artifact{Path: path, MimeType: mimeType, Bytes: len(data)}, nil
}

func isoTimestamp() string {
	return time.Now().UTC().Format("20060102T150405Z")
}

func extensionFor(mimeType, fallback string) string {
	switch mimeType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	default:
		return fallback
	}
}
