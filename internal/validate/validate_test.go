package validate

import (
	"context"
	"testing"

	"github.com/basupportii/ai-router/internal/cache"
	"github.com/basupportii/ai-router/internal/reqtypes"
	"github.com/basupportii/ai-router/internal/sandbox"
	"github.com/basupportii/ai-router/internal/toolchain"
	"github.com/stretchr/testify/require"
)

func TestVerifyMath_ReplacesWrongAnswer(t *testing.T) {
	replacement, replaced := VerifyMath("what is 12 + 30", "Thinking...\nResult: 99")
	require.True(t, replaced)
	require.Contains(t, replacement, "42")
}

func TestVerifyMath_LeavesCorrectAnswerAlone(t *testing.T) {
	_, replaced := VerifyMath("what is 12 + 30", "Thinking...\nResult: 42")
	require.False(t, replaced)
}

func TestVerifyMath_NoExpressionIsNoOp(t *testing.T) {
	_, replaced := VerifyMath("tell me a joke", "Thinking...\nResult: 42")
	require.False(t, replaced)
}

func TestCodeSelfCheck_NoFencedBlockIsNoOp(t *testing.T) {
	registry := toolchain.NewRegistry(sandbox.PythonTool{SafeMode: true})
	out, err := CodeSelfCheck(context.Background(), registry, nil, "just text, no code here")
	require.NoError(t, err)
	require.Equal(t, "just text, no code here", out)
}

func TestCodeSelfCheck_IneligibleLanguageIsNoOp(t *testing.T) {
	registry := toolchain.NewRegistry(sandbox.PythonTool{SafeMode: true})
	answer := "```go\nfmt.Println(1)\n```"
	out, err := CodeSelfCheck(context.Background(), registry, nil, answer)
	require.NoError(t, err)
	require.Equal(t, answer, out)
}

func TestRiskReview_SkipsForUnlistedIntent(t *testing.T) {
	out, err := RiskReview(context.Background(), reqtypes.IntentSimpleQA, func(ctx context.Context, prompt, draft string) (string, error) {
		return "rewritten", nil
	}, "p", "draft")
	require.NoError(t, err)
	require.Equal(t, "draft", out)
}

func TestRiskReview_RunsForSystemDesign(t *testing.T) {
	out, err := RiskReview(context.Background(), reqtypes.IntentSystemDesign, func(ctx context.Context, prompt, draft string) (string, error) {
		return "corrected", nil
	}, "p", "draft")
	require.NoError(t, err)
	require.Equal(t, "corrected", out)
}

func TestValidateRanking_RefusesWithoutCitations(t *testing.T) {
	v := ValidateRanking("top 10 languages", "1. Go\n2. Rust\n")
	require.True(t, v.Refused)
}

func TestValidateRanking_PrependsNoticeWhenUnderTen(t *testing.T) {
	answer := "1. Go [1]\n2. Rust [2]\n3. Python [3]\n"
	v := ValidateRanking("give me the top 10 languages", answer)
	require.True(t, v.Valid)
	require.Contains(t, v.Answer, "only 3 items")
}

func TestValidateRanking_AcceptsGroundedFullList(t *testing.T) {
	answer := "1. Go [1]\n2. Rust [2]\n3. C [3]\n4. C++ [4]\n5. Java [5]\n6. Python [6]\n7. JS [7]\n8. TS [8]\n9. Ruby [9]\n10. Swift [10]\n"
	v := ValidateRanking("top 10 languages", answer)
	require.True(t, v.Valid)
	require.NotContains(t, v.Answer, "only")
}

func TestWriteCache_SkipsRankingAnswers(t *testing.T) {
	c, err := cache.NewCache(t.TempDir())
	require.NoError(t, err)
	err = WriteCache(c, reqtypes.IntentRankingQuery, "prompt", "1. a [1]\n2. b [2]\n", nil, false)
	require.NoError(t, err)
	_, ok := c.Get(cache.Key(reqtypes.IntentRankingQuery, "prompt"))
	require.False(t, ok)
}

func TestWriteCache_StoresNonRankingAnswer(t *testing.T) {
	c, err := cache.NewCache(t.TempDir())
	require.NoError(t, err)
	err = WriteCache(c, reqtypes.IntentSimpleQA, "prompt", "an answer", nil, false)
	require.NoError(t, err)
	entry, ok := c.Get(cache.Key(reqtypes.IntentSimpleQA, "prompt"))
	require.True(t, ok)
	require.Equal(t, "an answer", entry.Response)
}
