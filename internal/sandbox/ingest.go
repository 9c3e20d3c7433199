package sandbox

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/basupportii/ai-router/internal/routererr"
	"github.com/basupportii/ai-router/internal/toolchain"
)

// ProjectRoot is the directory every ingest/SQL path is resolved
// under. Defaults to the process working directory; cmd/router does not
// change it, tests override it.
var ProjectRoot = "."

// ResolvePath joins raw onto ProjectRoot and rejects any result that
// escapes it, per spec.md §4.6's invalid_path failure kind — no
// traversal via "..", and absolute paths are re-rooted under the root.
// The check is lexical: symlinks inside the root are not resolved.
func ResolvePath(raw string) (string, error) {
	if raw == "" {
		return "", routererr.New(routererr.KindInvalidPath, "empty path")
	}
	root, err := filepath.Abs(ProjectRoot)
	if err != nil {
		return "", routererr.Wrap(routererr.KindInvalidPath, "resolve project root", err)
	}
	joined := filepath.Join(root, raw)
	resolved, err := filepath.Abs(joined)
	if err != nil {
		return "", routererr.Wrap(routererr.KindInvalidPath, "resolve path", err)
	}
	if resolved != root && !strings.HasPrefix(resolved, root+string(filepath.Separator)) {
		return "", routererr.New(routererr.KindInvalidPath, "path escapes project root: "+raw)
	}
	return resolved, nil
}

// IngestTool reads a file under ProjectRoot and returns its contents,
// bounded by the same input-size contract every tool shares.
type IngestTool struct{}

func (t IngestTool) Kind() toolchain.Kind { return toolchain.KindIngest }

func (t IngestTool) Run(ctx context.Context, args toolchain.Args) (toolchain.Result, error) {
	resolved, err := ResolvePath(args.Path)
	if err != nil {
		return toolchain.Result{}, err
	}
	data, err := os.ReadFile(resolved)
	if err != nil {
		return toolchain.Result{}, routererr.Wrap(routererr.KindSandboxError, "read file", err)
	}
	text := string(data)
	if len(text) > maxInputCharsExported {
		text = text[:maxInputCharsExported]
	}
	return toolchain.Result{Output: text}, nil
}

// maxInputCharsExported mirrors toolchain's bounded-input contract for
// file reads, which aren't routed through Dispatch's own size check
// (they produce large input, not consume it).
const maxInputCharsExported = 120_000
