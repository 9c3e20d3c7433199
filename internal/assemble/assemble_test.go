package assemble

import (
	"context"
	"testing"

	"github.com/basupportii/ai-router/internal/reqtypes"
	"github.com/stretchr/testify/require"
)

func TestAssemble_LightPromptSkipsHeavySections(t *testing.T) {
	in := Input{
		Request: reqtypes.Request{Prompt: "hi", NormalizedPrompt: "hi"},
		Verdict: reqtypes.IntentVerdict{Intent: reqtypes.IntentSimpleQA},
		Route:   reqtypes.Route{Task: reqtypes.TaskFast},
	}
	out, err := Assemble(context.Background(), in)
	require.NoError(t, err)
	require.Equal(t, "hi", out)
}

func TestAssemble_VagueRankingHintAppears(t *testing.T) {
	prompt := "give me a top 10 list of the best ones, no context at all here really"
	in := Input{
		Request: reqtypes.Request{Prompt: prompt, NormalizedPrompt: prompt},
		Verdict: reqtypes.IntentVerdict{Intent: reqtypes.IntentRankingQuery},
		Route:   reqtypes.Route{Task: reqtypes.TaskChat},
	}
	out, err := Assemble(context.Background(), in)
	require.NoError(t, err)
	require.Contains(t, out, "no explicit ranking category")
}

func TestAssemble_FollowUpSuppressesWeb(t *testing.T) {
	longPrompt := "can you explain in much more depth what happened during that historical event and why?"
	in := Input{
		Request:    reqtypes.Request{Prompt: longPrompt, NormalizedPrompt: longPrompt},
		Verdict:    reqtypes.IntentVerdict{Intent: reqtypes.IntentWorldKnowledge, RequiresWeb: true},
		Route:      reqtypes.Route{Task: reqtypes.TaskChat},
		IsFollowUp: true,
		Searcher:   nil,
	}
	out, err := Assemble(context.Background(), in)
	require.NoError(t, err)
	require.NotContains(t, out, "Web search results")
}

func TestAssemble_VisualizationExtraAppended(t *testing.T) {
	longPrompt := "draw me a detailed chart of monthly revenue across the last several years please"
	in := Input{
		Request: reqtypes.Request{Prompt: longPrompt, NormalizedPrompt: longPrompt},
		Verdict: reqtypes.IntentVerdict{Intent: reqtypes.IntentVisualization},
		Route:   reqtypes.Route{Task: reqtypes.TaskChart},
	}
	out, err := Assemble(context.Background(), in)
	require.NoError(t, err)
	require.Contains(t, out, "CHART_JSON")
}

func TestAssemble_MemoryContextIncludesRecalledEntry(t *testing.T) {
	longPrompt := "remind me what we discussed about golang concurrency patterns last time we spoke, please?"
	in := Input{
		Request: reqtypes.Request{Prompt: longPrompt, NormalizedPrompt: longPrompt},
		Verdict: reqtypes.IntentVerdict{Intent: reqtypes.IntentMemory},
		Route:   reqtypes.Route{Task: reqtypes.TaskPersonal},
		MemoryEntries: []reqtypes.MemoryEntry{
			{ID: "1", Prompt: "what is a goroutine", Response: "a lightweight thread", Keywords: []string{"golang", "concurrency", "goroutine"}},
		},
	}
	out, err := Assemble(context.Background(), in)
	require.NoError(t, err)
	require.Contains(t, out, "a lightweight thread")
}
