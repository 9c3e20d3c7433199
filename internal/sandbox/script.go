// Package sandbox implements the out-of-process execution contracts
// spec.md §4.6 requires for scripting/JS-TS/SQL tools: denylist safe
// mode, bounded input, hard kill timeouts, and (for SQL) a read-only
// query cache. No embedded interpreter exists anywhere in the
// reference corpus, so these tools are modeled the way the spec's own
// wording calls for — spawning real out-of-process interpreters
// (python3/node/deno) with os/exec, not an embedded VM.
package sandbox

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"time"

	"github.com/basupportii/ai-router/internal/routererr"
	"github.com/basupportii/ai-router/internal/toolchain"
)

// scriptTimeout is the hard kill timer for python/sympy scripts.
const scriptTimeout = 12 * time.Second

// jsTimeout is the hard kill timer for JS/TS, which run under a
// stricter budget since they back interactive chat tool calls.
const jsTimeout = 2 * time.Second

// pythonDenylist rejects imports/builtins capable of touching the
// filesystem, network, or process table when safe mode is on.
var pythonDenylist = []string{
	"import os", "import sys", "import subprocess", "import socket",
	"import shutil", "__import__", "open(", "eval(", "exec(",
	"compile(", "input(",
}

// jsDenylist rejects the Node-specific escape hatches; a bare browser-
// style script has no access to these regardless.
var jsDenylist = []string{
	"require(", "process.", "child_process", "fs.", "__dirname", "__filename", "import(",
}

// PythonTool runs python3 as a subprocess with a 12s hard timeout.
type PythonTool struct {
	SafeMode bool
}

func (t PythonTool) Kind() toolchain.Kind { return toolchain.KindPython }

func (t PythonTool) Run(ctx context.Context, args toolchain.Args) (toolchain.Result, error) {
	if t.SafeMode {
		if hit, ok := denylisted(args.Code, pythonDenylist); ok {
			return toolchain.Result{}, routererr.New(routererr.KindUnsafeCode, "disallowed construct: "+hit)
		}
	}
	return runSubprocess(ctx, scriptTimeout, "python3", []string{"-c", args.Code})
}

// SympyTool runs a python3 subprocess with sympy pre-imported, for
// symbolic math and proof-adjacent verification.
type SympyTool struct{}

func (t SympyTool) Kind() toolchain.Kind { return toolchain.KindSympy }

func (t SympyTool) Run(ctx context.Context, args toolchain.Args) (toolchain.Result, error) {
	if hit, ok := denylisted(args.Code, pythonDenylist); ok {
		return toolchain.Result{}, routererr.New(routererr.KindUnsafeCode, "disallowed construct: "+hit)
	}
	script := "from sympy import *\n" + args.Code
	return runSubprocess(ctx, scriptTimeout, "python3", []string{"-c", script})
}

// JSTool runs node as a subprocess with a 2s hard timeout and a
// require/process denylist standing in for a VM sandbox.
type JSTool struct{}

func (t JSTool) Kind() toolchain.Kind { return toolchain.KindJS }

func (t JSTool) Run(ctx context.Context, args toolchain.Args) (toolchain.Result, error) {
	if hit, ok := denylisted(args.Code, jsDenylist); ok {
		return toolchain.Result{}, routererr.New(routererr.KindUnsafeCode, "disallowed construct: "+hit)
	}
	return runSubprocess(ctx, jsTimeout, "node", []string{"-e", args.Code})
}

// TSTool transpiles-and-runs via deno, which accepts TypeScript
// directly without a separate build step.
type TSTool struct{}

func (t TSTool) Kind() toolchain.Kind { return toolchain.KindTS }

func (t TSTool) Run(ctx context.Context, args toolchain.Args) (toolchain.Result, error) {
	if hit, ok := denylisted(args.Code, jsDenylist); ok {
		return toolchain.Result{}, routererr.New(routererr.KindUnsafeCode, "disallowed construct: "+hit)
	}
	return runSubprocess(ctx, jsTimeout, "deno", []string{"eval", "--ext=ts", args.Code})
}

func denylisted(code string, list []string) (string, bool) {
	lower := strings.ToLower(code)
	for _, term := range list {
		if strings.Contains(lower, strings.ToLower(term)) {
			return term, true
		}
	}
	return "", false
}

// runSubprocess spawns name with args, killing it at the hard timeout
// and mapping the two failure shapes spec.md §4.6 names:
// sandbox_timeout and sandbox_error.
func runSubprocess(ctx context.Context, timeout time.Duration, name string, args []string) (toolchain.Result, error) {
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if runCtx.Err() == context.DeadlineExceeded {
		return toolchain.Result{}, routererr.New(routererr.KindSandboxTimeout, name+" exceeded "+timeout.String())
	}
	if err != nil {
		return toolchain.Result{}, routererr.Wrap(routererr.KindSandboxError, stderr.String(), err)
	}
	return toolchain.Result{Output: stdout.String()}, nil
}
