package registry

import (
	"fmt"
	"sync"

	"github.com/basupportii/ai-router/pkg/provider"
)

// globalRegistry backs the package-level convenience functions below.
// The router itself never touches it: cmd/router/main.go builds its
// own *Registry so the provider set a process starts with is exactly
// what that process's config resolved, not whatever a prior call
// happened to register into process-wide state. The global functions
// exist for callers that genuinely want one shared registry (a REPL,
// a single-binary script) rather than a wired-up server process.
var globalRegistry = NewRegistry()

// Registry resolves "provider:model" strings — "ollama:llama3:8b",
// "a1111:" — to a concrete provider.LanguageModel/EmbeddingModel/
// ImageModel, so the rest of the router never holds a reference to a
// specific *ollama.Provider or *a1111.Provider, only a name.
type Registry struct {
	mu        sync.RWMutex
	providers map[string]provider.Provider
	aliases   map[string]string // model alias -> provider:model
}

// NewRegistry builds an empty Registry; callers populate it with
// RegisterProvider before resolving anything.
func NewRegistry() *Registry {
	return &Registry{
		providers: make(map[string]provider.Provider),
		aliases:   make(map[string]string),
	}
}

// RegisterProvider makes p resolvable under name (e.g. "ollama").
func (r *Registry) RegisterProvider(name string, p provider.Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[name] = p
}

// GetProvider returns the provider registered under name, for callers
// that need the provider itself rather than one resolved model (e.g.
// cmd/router/main.go fetching the A1111 provider's ImageModel).
func (r *Registry) GetProvider(name string) (provider.Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.providers[name]
	if !ok {
		return nil, fmt.Errorf("provider not found: %s", name)
	}
	return p, nil
}

// RegisterAlias lets a short name stand in for a full "provider:model"
// string, e.g. RegisterAlias("coder", "ollama:deepseek-coder:6.7b").
func (r *Registry) RegisterAlias(alias, target string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.aliases[alias] = target
}

// ResolveLanguageModel resolves model — an alias or a literal
// "provider:model" string — to a concrete provider.LanguageModel.
func (r *Registry) ResolveLanguageModel(model string) (provider.LanguageModel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	// Check if it's an alias
	if target, ok := r.aliases[model]; ok {
		model = target
	}

	// Parse provider:model format
	providerName, modelID, err := parseModelString(model)
	if err != nil {
		return nil, err
	}

	// Get provider
	p, ok := r.providers[providerName]
	if !ok {
		return nil, fmt.Errorf("provider not found: %s", providerName)
	}

	// Get model from provider
	return p.LanguageModel(modelID)
}

// ResolveEmbeddingModel resolves a model string to an EmbeddingModel
func (r *Registry) ResolveEmbeddingModel(model string) (provider.EmbeddingModel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	// Check if it's an alias
	if target, ok := r.aliases[model]; ok {
		model = target
	}

	// Parse provider:model format
	providerName, modelID, err := parseModelString(model)
	if err != nil {
		return nil, err
	}

	// Get provider
	p, ok := r.providers[providerName]
	if !ok {
		return nil, fmt.Errorf("provider not found: %s", providerName)
	}

	// Get model from provider
	return p.EmbeddingModel(modelID)
}

// ListProviders returns all registered provider names
func (r *Registry) ListProviders() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	return names
}

// ListAliases returns all registered aliases
func (r *Registry) ListAliases() map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	aliases := make(map[string]string, len(r.aliases))
	for k, v := range r.aliases {
		aliases[k] = v
	}
	return aliases
}

// parseModelString parses a model string into provider and model ID
// Formats supported:
//   - "provider:model" -> ("provider", "model")
//   - "model" -> ("", "", error) - no colon
func parseModelString(model string) (provider, modelID string, err error) {
	// Find colon separator
	for i := 0; i < len(model); i++ {
		if model[i] == ':' {
			return model[:i], model[i+1:], nil
		}
	}

	// No colon found
	return "", "", fmt.Errorf("invalid model string format (expected 'provider:model'): %s", model)
}

// Global registry functions

// RegisterProvider registers a provider in the global registry
func RegisterProvider(name string, p provider.Provider) {
	globalRegistry.RegisterProvider(name, p)
}

// GetProvider returns a provider from the global registry
func GetProvider(name string) (provider.Provider, error) {
	return globalRegistry.GetProvider(name)
}

// RegisterAlias registers a model alias in the global registry
func RegisterAlias(alias, target string) {
	globalRegistry.RegisterAlias(alias, target)
}

// ResolveLanguageModel resolves a model string using the global registry
func ResolveLanguageModel(model string) (provider.LanguageModel, error) {
	return globalRegistry.ResolveLanguageModel(model)
}

// ResolveEmbeddingModel resolves an embedding model string using the global registry
func ResolveEmbeddingModel(model string) (provider.EmbeddingModel, error) {
	return globalRegistry.ResolveEmbeddingModel(model)
}

// GetGlobalRegistry returns the global registry instance
func GetGlobalRegistry() *Registry {
	return globalRegistry
}
