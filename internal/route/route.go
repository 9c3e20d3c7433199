// Package route implements route and model selection (spec.md §4.4):
// given an intent verdict and request flags, decide the task tag,
// backend model name, and system prompt id for a request.
package route

import (
	"strings"

	"github.com/basupportii/ai-router/internal/reqtypes"
)

// ModelSet names the concrete Ollama models behind each task profile.
// Fixed once at startup in cmd/router and handed to Select.
type ModelSet struct {
	Fast    string
	Chat    string
	Coder   string
	Reason  string
	Vision  string
	Grammar string
}

// Input bundles everything Select needs to reach a decision.
type Input struct {
	Verdict        reqtypes.IntentVerdict
	TaskOverride   *reqtypes.TaskTag
	ModelOverride  string
	ImageDesc      string
	PreferFast     bool
	RankingOverridden bool
}

// profileModel picks the model name for a task tag out of the set.
func profileModel(models ModelSet, task reqtypes.TaskTag) string {
	switch task {
	case reqtypes.TaskFast:
		return models.Fast
	case reqtypes.TaskCode, reqtypes.TaskDebug:
		return models.Coder
	case reqtypes.TaskReason, reqtypes.TaskReport:
		return models.Reason
	case reqtypes.TaskVision:
		return models.Vision
	case reqtypes.TaskGrammar:
		return models.Grammar
	default:
		return models.Chat
	}
}

// priorityTables maps a task tag to the keyword list that triggers it,
// per spec.md §4.4 decision step 3. Order matters: first match wins.
var priorityTables = []struct {
	Task     reqtypes.TaskTag
	Keywords []string
}{
	{reqtypes.TaskGrammar, []string{"fix grammar", "proofread", "correct this"}},
	{reqtypes.TaskPersonal, []string{"remember that", "recall", "what did i tell you"}},
	{reqtypes.TaskImagePrompt, []string{"generate an image", "draw", "create a picture"}},
	{reqtypes.TaskVideoPrompt, []string{"generate a video", "render a clip"}},
	{reqtypes.TaskDashboard, []string{"build a dashboard", "dashboard with"}},
	{reqtypes.TaskChart, []string{"chart", "plot", "graph this", "visualize"}},
	{reqtypes.TaskReport, []string{"write a report", "executive summary"}},
	{reqtypes.TaskResearch, []string{"research", "find sources", "latest news"}},
	{reqtypes.TaskDebug, []string{"stack trace", "traceback", "exception", "panic:"}},
	{reqtypes.TaskSQL, []string{"sql", "select from", "query the database"}},
	{reqtypes.TaskCode, []string{"write a function", "implement", "refactor"}},
}

// Select resolves a Route per the fixed decision order of spec.md
// §4.4: explicit override, then vision, then priority pattern tables,
// then preferFast/tiny-prompt, then default chat — followed by the
// separate escalation/downgrade pass.
func Select(in Input, models ModelSet, normalizedPrompt string) reqtypes.Route {
	task := resolveTask(in, normalizedPrompt)
	model := profileModel(models, task)
	systemPromptID := string(task)

	model = applyEscalation(in.Verdict, task, model, models)

	if in.Verdict.Intent == reqtypes.IntentRankingQuery && !in.RankingOverridden {
		systemPromptID = "ranking"
	}

	return reqtypes.Route{
		Task:           task,
		Model:          model,
		SystemPromptID: systemPromptID,
		Rationale:      rationale(in, task),
	}
}

func resolveTask(in Input, normalizedPrompt string) reqtypes.TaskTag {
	if in.TaskOverride != nil {
		return *in.TaskOverride
	}
	if in.ImageDesc != "" {
		return reqtypes.TaskVision
	}
	for _, entry := range priorityTables {
		for _, kw := range entry.Keywords {
			if strings.Contains(normalizedPrompt, kw) {
				return entry.Task
			}
		}
	}
	if in.PreferFast || isTinyPrompt(normalizedPrompt) {
		return reqtypes.TaskFast
	}
	return reqtypes.TaskChat
}

// isTinyPrompt mirrors the bypassHeavy shape used by context assembly:
// a prompt this short almost never needs anything beyond the fast model.
func isTinyPrompt(prompt string) bool {
	return BypassHeavy(prompt)
}

// BypassHeavy is the shared "light prompt" predicate spec.md §4.3 and
// §4.4 both consult: assembly skips heavy context sections and routing
// prefers the fast model when this holds.
func BypassHeavy(prompt string) bool {
	if len(prompt) <= 80 {
		return true
	}
	return len(prompt) <= 140 && !strings.Contains(prompt, "?")
}

// applyEscalation implements spec.md §4.4's post-selection escalation
// and downgrade rules.
func applyEscalation(v reqtypes.IntentVerdict, task reqtypes.TaskTag, model string, models ModelSet) string {
	if v.Intent == reqtypes.IntentMathReasoning &&
		(v.Complexity == reqtypes.ComplexityTrivial || v.Complexity == reqtypes.ComplexityLow) {
		return models.Fast
	}

	needsEscalation := v.Confidence == reqtypes.ConfidenceLow ||
		(v.Confidence == reqtypes.ConfidenceMedium && (v.Complexity == reqtypes.ComplexityHigh || v.Complexity == reqtypes.ComplexityVeryHigh))
	if !needsEscalation {
		return model
	}

	switch {
	case task == reqtypes.TaskCode || task == reqtypes.TaskDebug:
		return models.Coder
	case isReasoningIntent(v.Intent):
		return models.Reason
	case task == reqtypes.TaskGrammar:
		return models.Grammar
	default:
		return models.Chat
	}
}

func isReasoningIntent(intent reqtypes.Intent) bool {
	switch intent {
	case reqtypes.IntentMathReasoning, reqtypes.IntentProofSolving,
		reqtypes.IntentSystemDesign, reqtypes.IntentDecisionMaking,
		reqtypes.IntentDataAnalysis:
		return true
	default:
		return false
	}
}

func rationale(in Input, task reqtypes.TaskTag) string {
	switch {
	case in.TaskOverride != nil:
		return "explicit task override"
	case in.ImageDesc != "":
		return "image description present"
	default:
		return "resolved task: " + string(task)
	}
}
