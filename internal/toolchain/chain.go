package toolchain

import (
	"context"
	"strings"

	"github.com/basupportii/ai-router/internal/routererr"
)

// StepResult is one executed chain step's contribution to the growing
// context block.
type StepResult struct {
	Step   ChainStep
	Result Result
	Err    error
}

// RunChain executes steps sequentially — per spec.md §4.6, tool
// executions are serialized within a chain — appending each result to
// a growing context block. It stops at the first error rather than
// running a poisoned remainder, and returns every step attempted so
// far including the failing one.
func RunChain(ctx context.Context, registry *Registry, steps []ChainStep) ([]StepResult, string, error) {
	var results []StepResult
	var block strings.Builder

	for _, step := range steps {
		kind, ok := ResolveKind(step.Name)
		if !ok {
			err := routererr.New(routererr.KindToolNotFound, step.Name)
			results = append(results, StepResult{Step: step, Err: err})
			return results, block.String(), err
		}
		out, err := registry.Dispatch(ctx, kind, step.Args)
		results = append(results, StepResult{Step: step, Result: out, Err: err})
		if err != nil {
			return results, block.String(), err
		}
		block.WriteString("### ")
		block.WriteString(step.Name)
		block.WriteString("\n")
		block.WriteString(out.Output)
		block.WriteString("\n\n")
	}

	return results, block.String(), nil
}
