// Package a1111 implements a provider.Provider for a local
// AUTOMATIC1111 Stable Diffusion WebUI instance, the image-generation
// backend the router's media pipeline targets (A1111_URL).
package a1111

import (
	"fmt"

	"github.com/basupportii/ai-router/pkg/internal/http"
	"github.com/basupportii/ai-router/pkg/provider"
)

// Provider implements provider.Provider for AUTOMATIC1111's REST API.
type Provider struct {
	config Config
	client *http.Client
}

// Config contains configuration for the A1111 provider.
type Config struct {
	// BaseURL is the local WebUI's API root, e.g. http://127.0.0.1:7860.
	BaseURL string
}

// New creates a new A1111 provider with the given configuration.
func New(cfg Config) *Provider {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "http://127.0.0.1:7860"
	}
	client := http.NewClient(http.Config{
		BaseURL: baseURL,
		Headers: map[string]string{"Content-Type": "application/json"},
	})
	return &Provider{config: cfg, client: client}
}

func (p *Provider) Name() string { return "a1111" }

func (p *Provider) LanguageModel(modelID string) (provider.LanguageModel, error) {
	return nil, fmt.Errorf("a1111 does not support language models")
}

func (p *Provider) EmbeddingModel(modelID string) (provider.EmbeddingModel, error) {
	return nil, fmt.Errorf("a1111 does not support embeddings")
}

// ImageModel returns an image generation model for the checkpoint
// name modelID (empty selects the WebUI's currently loaded checkpoint).
func (p *Provider) ImageModel(modelID string) (provider.ImageModel, error) {
	return NewImageModel(p, modelID), nil
}

func (p *Provider) SpeechModel(modelID string) (provider.SpeechModel, error) {
	return nil, fmt.Errorf("a1111 does not support speech synthesis")
}

func (p *Provider) TranscriptionModel(modelID string) (provider.TranscriptionModel, error) {
	return nil, fmt.Errorf("a1111 does not support transcription")
}

func (p *Provider) RerankingModel(modelID string) (provider.RerankingModel, error) {
	return nil, fmt.Errorf("a1111 does not support reranking")
}

// Client returns the HTTP client for making API requests.
func (p *Provider) Client() *http.Client {
	return p.client
}
