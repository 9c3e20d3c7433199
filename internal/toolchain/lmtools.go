package toolchain

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/basupportii/ai-router/internal/routererr"
)

// LMCaller is the minimal backend hook summarize/analyze need. It is
// injected rather than imported directly so toolchain never depends on
// internal/generate — the dependency graph here stays a DAG, per
// Design Notes §9's "graph edges, no cycles" guidance.
type LMCaller func(ctx context.Context, prompt string) (string, error)

// SummarizeTool condenses Args.Text via a single cheap-model call.
type SummarizeTool struct {
	Call LMCaller
}

func (t SummarizeTool) Kind() Kind { return KindSummarize }

func (t SummarizeTool) Run(ctx context.Context, args Args) (Result, error) {
	if args.Text == "" {
		return Result{}, routererr.New(routererr.KindBadRequest, "summarize requires text")
	}
	out, err := t.Call(ctx, "Summarize the following in 3-5 sentences:\n\n"+args.Text)
	if err != nil {
		return Result{}, routererr.Wrap(routererr.KindBackendError, "summarize", err)
	}
	return Result{Output: out}, nil
}

// AnalyzeTool inspects code/log text (the "code_analysis" alias) via
// a single model call and returns structured findings as text.
type AnalyzeTool struct {
	Call LMCaller
}

func (t AnalyzeTool) Kind() Kind { return KindAnalyze }

func (t AnalyzeTool) Run(ctx context.Context, args Args) (Result, error) {
	if args.Code == "" && args.Text == "" {
		return Result{}, routererr.New(routererr.KindBadRequest, "analyze requires code or text")
	}
	body := args.Code
	if body == "" {
		body = args.Text
	}
	out, err := t.Call(ctx, "Analyze the following for bugs and risks:\n\n"+body)
	if err != nil {
		return Result{}, routererr.Wrap(routererr.KindBackendError, "analyze", err)
	}
	return Result{Output: out}, nil
}

// chartSeries is the minimal shape a VISUALIZATION intent's CHART_JSON
// marker must satisfy.
type chartSeries struct {
	Type   string    `json:"type"`
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

// VisualizeTool validates or derives a CHART_JSON block from Args.Text.
// If Text already contains one it is validated and passed through;
// otherwise a single model call is asked to produce it.
type VisualizeTool struct {
	Call LMCaller
}

func (t VisualizeTool) Kind() Kind { return KindVisualize }

func (t VisualizeTool) Run(ctx context.Context, args Args) (Result, error) {
	if idx := strings.Index(args.Text, "CHART_JSON:"); idx >= 0 {
		raw := strings.TrimSpace(args.Text[idx+len("CHART_JSON:"):])
		var series chartSeries
		if err := json.Unmarshal([]byte(raw), &series); err != nil {
			return Result{}, routererr.Wrap(routererr.KindBadRequest, "invalid CHART_JSON payload", err)
		}
		return Result{Output: "CHART_JSON:" + raw}, nil
	}
	if t.Call == nil {
		return Result{}, routererr.New(routererr.KindBadRequest, "no chart data and no model call configured")
	}
	out, err := t.Call(ctx, "Produce a CHART_JSON: block (type/labels/values) summarizing:\n\n"+args.Text)
	if err != nil {
		return Result{}, routererr.Wrap(routererr.KindBackendError, "visualize", err)
	}
	return Result{Output: out}, nil
}
