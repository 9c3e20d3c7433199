package route

import (
	"testing"

	"github.com/basupportii/ai-router/internal/reqtypes"
	"github.com/stretchr/testify/assert"
)

var testModels = ModelSet{
	Fast:    "phi3:mini",
	Chat:    "llama3:8b",
	Coder:   "deepseek-coder:6.7b",
	Reason:  "qwq:32b",
	Vision:  "llava:13b",
	Grammar: "gemma2:2b",
}

func TestSelect_ImageDescriptionForcesVision(t *testing.T) {
	r := Select(Input{
		Verdict:   reqtypes.IntentVerdict{Intent: reqtypes.IntentSimpleQA},
		ImageDesc: "a cat on a windowsill",
	}, testModels, "describe this picture")
	assert.Equal(t, reqtypes.TaskVision, r.Task)
	assert.Equal(t, testModels.Vision, r.Model)
}

func TestSelect_ExplicitOverrideWins(t *testing.T) {
	override := reqtypes.TaskSQL
	r := Select(Input{
		Verdict:      reqtypes.IntentVerdict{Intent: reqtypes.IntentSimpleQA},
		TaskOverride: &override,
	}, testModels, "anything at all")
	assert.Equal(t, reqtypes.TaskSQL, r.Task)
}

func TestSelect_TinyPromptPrefersFast(t *testing.T) {
	r := Select(Input{
		Verdict: reqtypes.IntentVerdict{Intent: reqtypes.IntentSimpleQA, Confidence: reqtypes.ConfidenceHigh},
	}, testModels, "hi")
	assert.Equal(t, reqtypes.TaskFast, r.Task)
}

func TestSelect_LowConfidenceEscalatesCoder(t *testing.T) {
	r := Select(Input{
		Verdict: reqtypes.IntentVerdict{
			Intent:     reqtypes.IntentCodeTask,
			Confidence: reqtypes.ConfidenceLow,
			Complexity: reqtypes.ComplexityHigh,
		},
	}, testModels, "write a function that merges two sorted lists and also does a ton of unrelated additional things here to make this prompt longer than the tiny-prompt threshold")
	assert.Equal(t, testModels.Coder, r.Model)
}

func TestSelect_TrivialMathDowngradesToFast(t *testing.T) {
	r := Select(Input{
		Verdict: reqtypes.IntentVerdict{
			Intent:     reqtypes.IntentMathReasoning,
			Confidence: reqtypes.ConfidenceVeryHigh,
			Complexity: reqtypes.ComplexityTrivial,
		},
	}, testModels, "what is 2 + 2")
	assert.Equal(t, testModels.Fast, r.Model)
}

func TestSelect_RankingForcesRankingSystemPrompt(t *testing.T) {
	r := Select(Input{
		Verdict: reqtypes.IntentVerdict{Intent: reqtypes.IntentRankingQuery, Confidence: reqtypes.ConfidenceHigh},
	}, testModels, "top 10 programming languages by popularity across the industry this year")
	assert.Equal(t, "ranking", r.SystemPromptID)
}

func TestSelect_RankingOverrideSuppressesForcedPrompt(t *testing.T) {
	r := Select(Input{
		Verdict:           reqtypes.IntentVerdict{Intent: reqtypes.IntentRankingQuery},
		RankingOverridden: true,
	}, testModels, "top 10 programming languages")
	assert.NotEqual(t, "ranking", r.SystemPromptID)
}
