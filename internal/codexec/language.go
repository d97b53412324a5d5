package codexec

import (
	"context"
	"fmt"
	"time"
)

// Language is the closed set of languages submissions may declare. Only Lua
// has a working executor; the other variants are bound to an explicit
// not-implemented stub so the gap is visible in the registry, not buried in a
// string switch.
type Language string

const (
	LanguageLua        Language = "lua"
	LanguagePython     Language = "python"
	LanguageJavaScript Language = "javascript"
)

// Languages lists every declared variant, implemented or not.
func Languages() []Language {
	return []Language{LanguageLua, LanguagePython, LanguageJavaScript}
}

// Result captures one execution attempt. Every failure mode still yields a
// fully-populated Result; nothing in this package panics or returns nil.
type Result struct {
	Success bool
	Output  string // textual rendering of the return value, or captured prints
	Error   string
}

// Executor runs one self-contained submission: define the code, call its
// zero-argument entry point once, capture the return value.
type Executor interface {
	Run(ctx context.Context, code string) Result
}

type notImplementedExecutor struct {
	lang Language
}

func (e notImplementedExecutor) Run(ctx context.Context, code string) Result {
	return Result{
		Success: false,
		Error:   fmt.Sprintf("%s execution not implemented yet", e.lang),
	}
}

// Runner dispatches a submission to the executor bound to its language.
type Runner struct {
	executors map[Language]Executor
}

// NewRunner builds the registry. timeout is the wall-clock ceiling for a
// single entry-point invocation; there is no way to interrupt running code
// other than this bound.
func NewRunner(timeout time.Duration) *Runner {
	return &Runner{
		executors: map[Language]Executor{
			LanguageLua:        newLuaExecutor(timeout),
			LanguagePython:     notImplementedExecutor{lang: LanguagePython},
			LanguageJavaScript: notImplementedExecutor{lang: LanguageJavaScript},
		},
	}
}

// Run executes code under the named language. Unknown languages get a
// deterministic failure result, never an error or a crash.
func (r *Runner) Run(ctx context.Context, code string, lang Language) Result {
	exec, ok := r.executors[lang]
	if !ok {
		return Result{
			Success: false,
			Error:   fmt.Sprintf("unsupported language: %s", lang),
		}
	}
	return exec.Run(ctx, code)
}
