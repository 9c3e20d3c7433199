package classify

import (
	"regexp"

	"github.com/basupportii/ai-router/internal/reqtypes"
)

// profile is the closed per-intent scoring table: a literal pattern
// list, a shape predicate, routing defaults, and the tool surface that
// intent prefers. Every entry in reqtypes' Intent catalog has exactly
// one profile.
type profile struct {
	Intent         reqtypes.Intent
	Patterns       []string
	AdvancedCheck  func(prompt string) bool
	RequiresWeb    bool
	PreferredModel string
	PrimaryTools   []string
	FlexibleTools  bool
}

var (
	reArithmeticShape = regexp.MustCompile(`\d+\s*[-+*/xX×÷]\s*\d+`)
	reExcelFormula    = regexp.MustCompile(`(?i)^\s*=\s*[A-Z]+\s*\(`)
	reSQLShape        = regexp.MustCompile(`(?i)\b(select|insert|update|delete|from|where|join)\b`)
	reHowMuchMany     = regexp.MustCompile(`(?i)\bhow (much|many)\b`)
	reBracketList     = regexp.MustCompile(`\[[^\]]*\d[^\]]*\]`)
	reCodeFence       = regexp.MustCompile("```")
	reHTMLTag         = regexp.MustCompile(`(?i)<\s*(html|div|span|body|head)\b`)
)

// profiles is ordered for readability only; scoring considers every
// profile regardless of position.
var profiles = []profile{
	{
		Intent:         reqtypes.IntentSimpleQA,
		Patterns:       []string{"what is", "who is", "when is", "where is", "define", "meaning of"},
		PreferredModel: "chat",
		PrimaryTools:   nil,
		FlexibleTools:  true,
	},
	{
		Intent:         reqtypes.IntentGrammarCorrection,
		Patterns:       []string{"fix grammar", "correct this", "proofread", "grammar check", "fix my sentence"},
		PreferredModel: "grammar",
		PrimaryTools:   nil,
	},
	{
		Intent:         reqtypes.IntentWorldKnowledge,
		Patterns:       []string{"latest", "current", "today", "news", "recent", "this year"},
		RequiresWeb:    true,
		PreferredModel: "chat",
	},
	{
		Intent:         reqtypes.IntentRankingQuery,
		Patterns:       []string{"top 10", "best", "rank", "leaderboard", "highest", "most popular"},
		RequiresWeb:    true,
		PreferredModel: "chat",
		PrimaryTools:   []string{"search"},
	},
	{
		Intent:         reqtypes.IntentCodeTask,
		Patterns:       []string{"write a function", "implement", "refactor", "fix this bug", "code for"},
		AdvancedCheck:  func(p string) bool { return reCodeFence.MatchString(p) },
		PreferredModel: "coder",
		PrimaryTools:   []string{"python", "code_execute"},
		FlexibleTools:  true,
	},
	{
		Intent:         reqtypes.IntentMathReasoning,
		Patterns:       []string{"solve", "calculate", "compute", "equation", "math problem"},
		AdvancedCheck:  func(p string) bool { return reArithmeticShape.MatchString(p) },
		PreferredModel: "reason",
		PrimaryTools:   []string{"sympy"},
	},
	{
		Intent:         reqtypes.IntentSQLQuery,
		Patterns:       []string{"sql", "query the database", "select from", "join table"},
		AdvancedCheck:  func(p string) bool { return reSQLShape.MatchString(p) },
		PreferredModel: "coder",
		PrimaryTools:   []string{"sql", "sql_schema"},
	},
	{
		Intent:         reqtypes.IntentDataAnalysis,
		Patterns:       []string{"analyze this data", "dataset", "trend", "correlation", "statistics"},
		AdvancedCheck:  func(p string) bool { return reBracketList.MatchString(p) },
		PreferredModel: "reason",
		PrimaryTools:   []string{"python"},
	},
	{
		Intent:         reqtypes.IntentCreative,
		Patterns:       []string{"write a story", "poem", "creative", "imagine", "fiction"},
		PreferredModel: "chat",
	},
	{
		Intent:         reqtypes.IntentDecisionMaking,
		Patterns:       []string{"should i", "pros and cons", "which is better", "decide between"},
		PreferredModel: "reason",
	},
	{
		Intent:         reqtypes.IntentLearning,
		Patterns:       []string{"explain", "teach me", "how does", "tutorial", "learn about"},
		PreferredModel: "chat",
	},
	{
		Intent:         reqtypes.IntentMemory,
		Patterns:       []string{"remember that", "recall", "what did i tell you", "forget that"},
		PreferredModel: "fast",
	},
	{
		Intent:         reqtypes.IntentMultiStep,
		Patterns:       []string{"step by step", "first do", "then do", "plan and execute"},
		PreferredModel: "reason",
		FlexibleTools:  true,
	},
	{
		Intent:         reqtypes.IntentDebugLog,
		Patterns:       []string{"stack trace", "exception", "traceback", "error log", "panic:"},
		PreferredModel: "coder",
		PrimaryTools:   []string{"code_analysis"},
	},
	{
		Intent:         reqtypes.IntentHTMLMarkup,
		Patterns:       []string{"html page", "webpage", "markup", "<div>", "landing page"},
		AdvancedCheck:  func(p string) bool { return reHTMLTag.MatchString(p) },
		PreferredModel: "coder",
	},
	{
		Intent:         reqtypes.IntentAnalysisReport,
		Patterns:       []string{"write a report", "executive summary", "report on", "summarize findings"},
		PreferredModel: "reason",
		PrimaryTools:   []string{"summarize"},
	},
	{
		Intent:         reqtypes.IntentVisualization,
		Patterns:       []string{"chart", "graph this", "plot", "visualize", "bar chart", "pie chart"},
		PreferredModel: "chat",
		PrimaryTools:   []string{"visualize"},
	},
	{
		Intent:         reqtypes.IntentProofSolving,
		Patterns:       []string{"prove that", "proof", "theorem", "show that"},
		PreferredModel: "reason",
		PrimaryTools:   []string{"sympy"},
	},
	{
		Intent:         reqtypes.IntentSystemDesign,
		Patterns:       []string{"design a system", "architecture", "scalable", "system design"},
		PreferredModel: "reason",
	},
	{
		Intent:         reqtypes.IntentFormulaGeneration,
		Patterns:       []string{"excel formula", "spreadsheet formula", "=SUM", "write a formula"},
		AdvancedCheck:  func(p string) bool { return reExcelFormula.MatchString(p) },
		PreferredModel: "fast",
	},
	{
		Intent:         reqtypes.IntentRiddle,
		Patterns:       []string{"riddle", "brain teaser", "what am i", "guess what"},
		PreferredModel: "fast",
	},
}

// advancedBoost is the fixed bonus for a matched advancedCheck, per
// spec.md §4.1.
const advancedBoost = 5

// howMuchManyBoost applies only to MATH_REASONING when the prompt also
// contains a digit.
const howMuchManyBoost = 2
