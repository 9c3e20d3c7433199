package validate

import (
	"context"
	"regexp"
	"strings"

	"github.com/basupportii/ai-router/internal/toolchain"
)

// reFencedCode captures the first fenced code block and its language tag.
var reFencedCode = regexp.MustCompile("(?s)```([a-zA-Z]*)\\n(.*?)```")

// selfCheckLangs is the closed set of languages the self-check runs,
// mapped to the sandbox tool kind that executes them.
var selfCheckLangs = map[string]toolchain.Kind{
	"python":     toolchain.KindPython,
	"py":         toolchain.KindPython,
	"javascript": toolchain.KindJS,
	"js":         toolchain.KindJS,
	"typescript": toolchain.KindTS,
	"ts":         toolchain.KindTS,
}

// RegenerateFunc re-asks the model with the sandbox error text
// prepended, returning the regenerated answer.
type RegenerateFunc func(ctx context.Context, originalAnswer, errorText string) (string, error)

// CodeSelfCheck extracts the first fenced code block in answer (when
// its language is python/javascript/typescript), executes it in the
// sandbox, and regenerates once on failure. Silent success — or no
// eligible fenced block — leaves answer untouched.
func CodeSelfCheck(ctx context.Context, registry *toolchain.Registry, regenerate RegenerateFunc, answer string) (string, error) {
	lang, code, ok := firstFencedBlock(answer)
	if !ok {
		return answer, nil
	}
	kind, eligible := selfCheckLangs[strings.ToLower(lang)]
	if !eligible {
		return answer, nil
	}

	result, err := registry.Dispatch(ctx, kind, toolchain.Args{Code: code})
	if err == nil {
		_ = result
		return answer, nil
	}
	if regenerate == nil {
		return answer, nil
	}
	regenerated, rerr := regenerate(ctx, answer, err.Error())
	if rerr != nil {
		return answer, nil
	}
	return regenerated, nil
}

func firstFencedBlock(text string) (lang, code string, ok bool) {
	m := reFencedCode.FindStringSubmatch(text)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}
