package toolchain

import (
	"context"
	"errors"
	"testing"

	"github.com/basupportii/ai-router/internal/routererr"
	"github.com/stretchr/testify/assert"
)

func stubCaller(response string, err error) LMCaller {
	return func(ctx context.Context, prompt string) (string, error) {
		return response, err
	}
}

func TestSummarizeTool_RequiresText(t *testing.T) {
	tool := SummarizeTool{Call: stubCaller("unused", nil)}
	_, err := tool.Run(context.Background(), Args{})
	assert.True(t, routererr.Is(err, routererr.KindBadRequest))
}

func TestSummarizeTool_ReturnsCallOutput(t *testing.T) {
	tool := SummarizeTool{Call: stubCaller("a short summary", nil)}
	out, err := tool.Run(context.Background(), Args{Text: "a long essay"})
	assert.NoError(t, err)
	assert.Equal(t, "a short summary", out.Output)
}

func TestSummarizeTool_WrapsBackendError(t *testing.T) {
	tool := SummarizeTool{Call: stubCaller("", errors.New("connection refused"))}
	_, err := tool.Run(context.Background(), Args{Text: "text"})
	assert.True(t, routererr.Is(err, routererr.KindBackendError))
}

func TestAnalyzeTool_RequiresCodeOrText(t *testing.T) {
	tool := AnalyzeTool{Call: stubCaller("unused", nil)}
	_, err := tool.Run(context.Background(), Args{})
	assert.True(t, routererr.Is(err, routererr.KindBadRequest))
}

func TestAnalyzeTool_PrefersCodeOverText(t *testing.T) {
	var seen string
	tool := AnalyzeTool{Call: func(ctx context.Context, prompt string) (string, error) {
		seen = prompt
		return "findings", nil
	}}
	out, err := tool.Run(context.Background(), Args{Code: "func main(){}", Text: "ignored"})
	assert.NoError(t, err)
	assert.Equal(t, "findings", out.Output)
	assert.Contains(t, seen, "func main(){}")
	assert.NotContains(t, seen, "ignored")
}

func TestVisualizeTool_PassesThroughExistingChartJSON(t *testing.T) {
	tool := VisualizeTool{}
	out, err := tool.Run(context.Background(), Args{Text: `CHART_JSON:{"type":"bar","labels":["a","b"],"values":[1,2]}`})
	assert.NoError(t, err)
	assert.Contains(t, out.Output, "CHART_JSON:")
	assert.Contains(t, out.Output, `"type":"bar"`)
}

func TestVisualizeTool_RejectsMalformedChartJSON(t *testing.T) {
	tool := VisualizeTool{}
	_, err := tool.Run(context.Background(), Args{Text: "CHART_JSON:{not valid json"})
	assert.True(t, routererr.Is(err, routererr.KindBadRequest))
}

func TestVisualizeTool_NoChartDataAndNoCallerIsBadRequest(t *testing.T) {
	tool := VisualizeTool{}
	_, err := tool.Run(context.Background(), Args{Text: "just some prose"})
	assert.True(t, routererr.Is(err, routererr.KindBadRequest))
}

func TestVisualizeTool_FallsBackToModelCallWhenNoChartJSONPresent(t *testing.T) {
	tool := VisualizeTool{Call: stubCaller(`CHART_JSON:{"type":"bar","labels":[],"values":[]}`, nil)}
	out, err := tool.Run(context.Background(), Args{Text: "quarterly revenue numbers"})
	assert.NoError(t, err)
	assert.Contains(t, out.Output, "CHART_JSON:")
}
