package a1111

import (
	"context"
	"encoding/base64"
	"fmt"

	providererrors "github.com/basupportii/ai-router/pkg/provider/errors"
	"github.com/basupportii/ai-router/pkg/provider"
	"github.com/basupportii/ai-router/pkg/provider/types"
)

// ImageModel implements provider.ImageModel against AUTOMATIC1111's
// txt2img endpoint.
type ImageModel struct {
	provider *Provider
	modelID  string
}

// NewImageModel creates a new A1111 image generation model.
func NewImageModel(provider *Provider, modelID string) *ImageModel {
	return &ImageModel{provider: provider, modelID: modelID}
}

func (m *ImageModel) SpecificationVersion() string { return "v3" }
func (m *ImageModel) Provider() string             { return "a1111" }
func (m *ImageModel) ModelID() string              { return m.modelID }

// DoGenerate performs image generation via POST /sdapi/v1/txt2img.
func (m *ImageModel) DoGenerate(ctx context.Context, opts *provider.ImageGenerateOptions) (*types.ImageResult, error) {
	reqBody := m.buildRequestBody(opts)

	var response a1111TxtToImgResponse
	err := m.provider.client.PostJSON(ctx, "/sdapi/v1/txt2img", reqBody, &response)
	if err != nil {
		return nil, providererrors.NewProviderError("a1111", 0, "", err.Error(), err)
	}
	return m.convertResponse(response)
}

func (m *ImageModel) buildRequestBody(opts *provider.ImageGenerateOptions) map[string]interface{} {
	width, height := 512, 512
	if opts.Size != "" {
		width, height = parseSize(opts.Size)
	}

	samples := 1
	if opts.N != nil {
		samples = *opts.N
	}

	body := map[string]interface{}{
		"prompt":      opts.Prompt,
		"width":       width,
		"height":      height,
		"batch_size":  samples,
		"sampler_name": "Euler a",
		"steps":       20,
	}
	if m.modelID != "" {
		body["override_settings"] = map[string]interface{}{"sd_model_checkpoint": m.modelID}
	}
	return body
}

func (m *ImageModel) convertResponse(response a1111TxtToImgResponse) (*types.ImageResult, error) {
	if len(response.Images) == 0 {
		return nil, fmt.Errorf("no image data returned from a1111")
	}
	imageBytes, err := base64.StdEncoding.DecodeString(response.Images[0])
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64 image: %w", err)
	}
	return &types.ImageResult{
		Image:    imageBytes,
		MimeType: "image/png",
		Usage:    types.ImageUsage{ImageCount: len(response.Images)},
	}, nil
}

func parseSize(size string) (int, int) {
	var w, h int
	if n, err := fmt.Sscanf(size, "%dx%d", &w, &h); err == nil && n == 2 {
		return w, h
	}
	return 512, 512
}

type a1111TxtToImgResponse struct {
	Images []string `json:"images"`
	Info   string   `json:"info"`
}
