package codexec

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	lua "github.com/yuin/gopher-lua"
)

// entryPointRe recognizes the required zero-argument entry point. The first
// such definition in the submission is the one invoked.
var entryPointRe = regexp.MustCompile(`function\s+([A-Za-z_][A-Za-z0-9_]*)\s*\(\s*\)`)

// unsafeGlobals are stripped from the base library after loading: nothing in
// a submission may load further code or reach outside the interpreter.
var unsafeGlobals = []string{"dofile", "loadfile", "load", "loadstring", "collectgarbage"}

// luaExecutor runs submissions inside an in-process Lua interpreter with an
// allow-listed environment: base, table, string and math libraries only, no
// io/os/package, and per-call print/warn capture so concurrent runs can never
// interleave output. Each call gets a fresh interpreter state; no state
// survives between runs.
type luaExecutor struct {
	timeout time.Duration
}

func newLuaExecutor(timeout time.Duration) *luaExecutor {
	return &luaExecutor{timeout: timeout}
}

func (e *luaExecutor) Run(ctx context.Context, code string) Result {
	match := entryPointRe.FindStringSubmatch(code)
	if match == nil {
		return Result{
			Success: false,
			Error:   "Function must have NO parameters: function solution()",
		}
	}
	funcName := match[1]

	var stdout, stderr strings.Builder

	L := lua.NewState(lua.Options{
		SkipOpenLibs:  true,
		CallStackSize: 128,
	})
	defer L.Close()

	if err := openRestrictedLibs(L); err != nil {
		return Result{Success: false, Error: "sandbox setup failed: " + err.Error()}
	}
	captureStreams(L, &stdout, &stderr)

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()
	L.SetContext(ctx)

	// Define the submitted code. Compile and definition-time faults are
	// reported verbatim, nothing is invoked. Top-level code runs here, so
	// the timeout can already expire.
	if err := L.DoString(code); err != nil {
		if ctx.Err() != nil {
			return Result{
				Success: false,
				Output:  strings.TrimSpace(stdout.String()),
				Error:   fmt.Sprintf("Execution timed out after %s", e.timeout),
			}
		}
		return Result{
			Success: false,
			Error:   "Code compilation error: " + err.Error(),
		}
	}

	fn := L.GetGlobal(funcName)
	if fn.Type() != lua.LTFunction {
		return Result{
			Success: false,
			Error:   fmt.Sprintf("Function '%s' not found in code", funcName),
		}
	}

	err := L.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true})
	printed := strings.TrimSpace(stdout.String())
	if err != nil {
		if ctx.Err() != nil {
			return Result{
				Success: false,
				Output:  printed,
				Error:   fmt.Sprintf("Execution timed out after %s", e.timeout),
			}
		}
		return Result{
			Success: false,
			Output:  printed,
			Error:   "Runtime error: " + err.Error(),
		}
	}

	ret := L.Get(-1)
	L.Pop(1)

	// Diagnostic output fails the run even when a value was returned.
	if diag := strings.TrimSpace(stderr.String()); diag != "" {
		output := printed
		if output == "" && ret != lua.LNil {
			output = renderValue(ret)
		}
		return Result{Success: false, Output: output, Error: diag}
	}

	actual := printed
	if ret != lua.LNil {
		actual = renderValue(ret)
	}
	return Result{Success: true, Output: actual}
}

// openRestrictedLibs loads the allow-listed standard libraries and strips the
// base functions that would let a submission load more code.
func openRestrictedLibs(L *lua.LState) error {
	for _, lib := range []struct {
		name string
		fn   lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	} {
		if err := L.CallByParam(lua.P{
			Fn:      L.NewFunction(lib.fn),
			NRet:    0,
			Protect: true,
		}, lua.LString(lib.name)); err != nil {
			return err
		}
	}
	for _, name := range unsafeGlobals {
		L.SetGlobal(name, lua.LNil)
	}
	return nil
}

// captureStreams redirects print and warn into per-call buffers scoped to
// this interpreter state, never the process streams.
func captureStreams(L *lua.LState, stdout, stderr *strings.Builder) {
	writeTo := func(buf *strings.Builder) lua.LGFunction {
		return func(l *lua.LState) int {
			top := l.GetTop()
			parts := make([]string, 0, top)
			for i := 1; i <= top; i++ {
				parts = append(parts, l.ToStringMeta(l.Get(i)).String())
			}
			buf.WriteString(strings.Join(parts, "\t"))
			buf.WriteString("\n")
			return 0
		}
	}
	L.SetGlobal("print", L.NewFunction(writeTo(stdout)))
	L.SetGlobal("warn", L.NewFunction(writeTo(stderr)))
}

// renderValue converts a Lua return value to its canonical textual form.
func renderValue(v lua.LValue) string {
	switch val := v.(type) {
	case lua.LBool:
		if bool(val) {
			return "true"
		}
		return "false"
	case lua.LString:
		return string(val)
	default:
		return v.String()
	}
}
