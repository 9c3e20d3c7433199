// Command router starts the local AI request router's HTTP and
// WebSocket surface: it resolves configuration, wires every
// collaborator package together into one appstate.AppState and
// pipeline.Pipeline, and serves internal/httpapi's gin engine.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/basupportii/ai-router/internal/appstate"
	"github.com/basupportii/ai-router/internal/config"
	"github.com/basupportii/ai-router/internal/httpapi"
	"github.com/basupportii/ai-router/internal/media"
	"github.com/basupportii/ai-router/internal/memory"
	"github.com/basupportii/ai-router/internal/pipeline"
	"github.com/basupportii/ai-router/internal/route"
	"github.com/basupportii/ai-router/internal/sandbox"
	"github.com/basupportii/ai-router/internal/toolchain"
	"github.com/basupportii/ai-router/internal/web"
	"github.com/basupportii/ai-router/pkg/agent"
	"github.com/basupportii/ai-router/pkg/ai"
	"github.com/basupportii/ai-router/pkg/middleware"
	"github.com/basupportii/ai-router/pkg/provider"
	"github.com/basupportii/ai-router/pkg/providers/a1111"
	"github.com/basupportii/ai-router/pkg/providers/ollama"
	"github.com/basupportii/ai-router/pkg/registry"
)

// models is the production route.ModelSet: the concrete Ollama model
// names the router's own route_test.go already assumes.
var models = route.ModelSet{
	Fast:    "phi3:mini",
	Chat:    "llama3:8b",
	Coder:   "deepseek-coder:6.7b",
	Reason:  "qwq:32b",
	Vision:  "llava:13b",
	Grammar: "gemma2:2b",
}

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := run(cfg); err != nil {
		log.Fatalf("router: %v", err)
	}
}

func run(cfg config.Config) error {
	state, err := appstate.New(cfg)
	if err != nil {
		return fmt.Errorf("appstate: %w", err)
	}

	// reg is the single place every backend (Ollama for text/embeddings,
	// A1111 for images) is registered under a name; callers resolve a
	// model through "provider:modelID" strings instead of holding a
	// reference to each concrete *ollama.Provider/*a1111.Provider.
	reg := registry.NewRegistry()
	reg.RegisterProvider("ollama", ollama.New(ollama.Config{BaseURL: cfg.OllamaURL}))
	if cfg.A1111URL != "" {
		reg.RegisterProvider("a1111", a1111.New(a1111.Config{BaseURL: cfg.A1111URL}))
	}

	// qwq:32b narrates its reasoning inside <think> tags before the
	// answer; strip it into a separate reasoning part rather than
	// leaking it into the response text shown to the router's callers.
	reasoningMiddleware := middleware.ExtractReasoningMiddleware(&middleware.ExtractReasoningOptions{
		TagName: "think",
	})
	resolve := func(name string) (provider.LanguageModel, error) {
		model, err := reg.ResolveLanguageModel("ollama:" + name)
		if err != nil {
			return nil, err
		}
		if name == models.Reason {
			model = middleware.WrapLanguageModel(model, []*middleware.LanguageModelMiddleware{reasoningMiddleware}, nil, nil)
		}
		return model, nil
	}

	var imageModel provider.ImageModel
	if cfg.A1111URL != "" {
		a1111Provider, err := reg.GetProvider("a1111")
		if err != nil {
			return fmt.Errorf("a1111: %w", err)
		}
		imageModel, err = a1111Provider.ImageModel("")
		if err != nil {
			return fmt.Errorf("a1111: %w", err)
		}
	}
	embedder, err := reg.ResolveEmbeddingModel("ollama:")
	if err != nil {
		return fmt.Errorf("ollama embedder: %w", err)
	}

	outputsDir := filepath.Join(cfg.DataDir, "outputs")
	mediaGen := media.NewGenerator(imageModel, cfg.FFmpegPath, outputsDir)

	searcher := web.NewSearcher(web.Config{
		SearchAPI:    cfg.SearchAPI,
		SearchAPIKey: cfg.SearchAPIKey,
		SearXNGURL:   cfg.SearXNGURL,
	})
	fetcher := web.NewFetcher()

	// lmCaller lets toolchain's Summarize/Analyze/Visualize tools invoke
	// a model without toolchain importing internal/generate, keeping the
	// package graph a DAG (generate depends on route, not vice versa).
	lmCaller := func(ctx context.Context, prompt string) (string, error) {
		model, err := resolve(models.Fast)
		if err != nil {
			return "", err
		}
		result, err := ai.GenerateText(ctx, ai.GenerateTextOptions{Model: model, Prompt: prompt})
		if err != nil {
			return "", err
		}
		return result.Text, nil
	}

	tools := toolchain.NewRegistry(
		sandbox.PythonTool{},
		sandbox.SympyTool{},
		sandbox.JSTool{},
		sandbox.TSTool{},
		sandbox.NewSQLTool(),
		sandbox.SQLSchemaTool{},
		sandbox.IngestTool{},
		web.SearchTool{Searcher: searcher},
		web.FetchTool{Fetcher: fetcher},
		toolchain.SummarizeTool{Call: lmCaller},
		toolchain.AnalyzeTool{Call: lmCaller},
		toolchain.VisualizeTool{Call: lmCaller},
	)

	readFile := func(path string) (string, error) {
		data, err := os.ReadFile(path)
		return string(data), err
	}

	tracker := memory.NewTracker()

	pl := &pipeline.Pipeline{
		Models:   models,
		Resolve:  resolve,
		Cache:    state.Cache,
		Memory:   state.Memory,
		Tracker:  tracker,
		Tools:    tools,
		Keyword:  state.Keyword,
		Embedded: state.Embedded,
		Searcher: searcher,
		Fetcher:  fetcher,
		ReadFile: readFile,
	}

	chatModel, err := resolve(models.Chat)
	if err != nil {
		return fmt.Errorf("agent model: %w", err)
	}
	toolLoopAgent := agent.NewToolLoopAgent(agent.AgentConfig{
		Model:    chatModel,
		System:   "You are the router's multi-step tool-calling agent.",
		MaxSteps: 6,
	})

	srv := &httpapi.Server{
		State:    state,
		Pipeline: pl,
		Tools:    tools,
		Media:    mediaGen,
		Agent:    toolLoopAgent,
		Tracker:  tracker,
		Embedder: embedder,
	}

	router := srv.NewRouter()
	log.Printf("listening on :%s", cfg.Port)
	return router.Run(":" + cfg.Port)
}
