package codexec

import (
	"context"
	"strings"
	"testing"
	"time"
)

func testRunner() *Runner {
	return NewRunner(2 * time.Second)
}

func TestRunReturnsValue(t *testing.T) {
	res := testRunner().Run(context.Background(), `
function solution()
    local total = 0
    for i = 1, 20 do
        if i % 2 == 0 then
            total = total + i
        end
    end
    return total
end
`, LanguageLua)

	if !res.Success {
		t.Fatalf("expected success, got error: %s", res.Error)
	}
	if res.Output != "110" {
		t.Errorf("Output = %q, want %q", res.Output, "110")
	}
}

func TestRunReturnsString(t *testing.T) {
	res := testRunner().Run(context.Background(), `
function solution()
    return string.reverse("Python")
end
`, LanguageLua)

	if !res.Success {
		t.Fatalf("expected success, got error: %s", res.Error)
	}
	if res.Output != "nohtyP" {
		t.Errorf("Output = %q, want %q", res.Output, "nohtyP")
	}
}

func TestRunReturnsBoolean(t *testing.T) {
	res := testRunner().Run(context.Background(), `
function solution()
    return 2 + 2 == 4
end
`, LanguageLua)

	if !res.Success {
		t.Fatalf("expected success, got error: %s", res.Error)
	}
	if res.Output != "true" {
		t.Errorf("Output = %q, want %q", res.Output, "true")
	}
}

func TestRunRejectsParameterizedEntryPoint(t *testing.T) {
	res := testRunner().Run(context.Background(), `
function solution(x)
    return x
end
`, LanguageLua)

	if res.Success {
		t.Fatal("expected failure for parameterized entry point")
	}
	if !strings.Contains(res.Error, "NO parameters") {
		t.Errorf("Error = %q, want entry point shape complaint", res.Error)
	}
}

func TestRunRejectsMissingEntryPoint(t *testing.T) {
	res := testRunner().Run(context.Background(), `local x = 1 + 1`, LanguageLua)

	if res.Success {
		t.Fatal("expected failure when no zero-argument function is defined")
	}
}

func TestRunReportsCompilationError(t *testing.T) {
	res := testRunner().Run(context.Background(), `
function solution()
    return 1 +
`, LanguageLua)

	if res.Success {
		t.Fatal("expected failure for syntactically invalid code")
	}
	if !strings.Contains(res.Error, "compilation error") {
		t.Errorf("Error = %q, want compilation error", res.Error)
	}
}

func TestRunReportsFunctionNotFound(t *testing.T) {
	// The entry-point scan matches inside the string literal, but defining
	// the code never creates that global.
	res := testRunner().Run(context.Background(), `local snippet = "function solution() end"`, LanguageLua)

	if res.Success {
		t.Fatal("expected failure when entry point is absent after definition")
	}
	if !strings.Contains(res.Error, "not found") {
		t.Errorf("Error = %q, want function-not-found error", res.Error)
	}
}

func TestRunReportsRuntimeError(t *testing.T) {
	res := testRunner().Run(context.Background(), `
function solution()
    print("before the fault")
    return missing.field
end
`, LanguageLua)

	if res.Success {
		t.Fatal("expected runtime failure")
	}
	if !strings.Contains(res.Error, "Runtime error") {
		t.Errorf("Error = %q, want runtime error", res.Error)
	}
	if res.Output != "before the fault" {
		t.Errorf("Output = %q, want partial captured output", res.Output)
	}
}

func TestRunPrintedOutputFallback(t *testing.T) {
	res := testRunner().Run(context.Background(), `
function solution()
    print("hello")
end
`, LanguageLua)

	if !res.Success {
		t.Fatalf("expected success, got error: %s", res.Error)
	}
	if res.Output != "hello" {
		t.Errorf("Output = %q, want printed text fallback", res.Output)
	}
}

func TestRunDiagnosticsFailTheCall(t *testing.T) {
	res := testRunner().Run(context.Background(), `
function solution()
    warn("something looks off")
    return 5
end
`, LanguageLua)

	if res.Success {
		t.Fatal("diagnostic output must fail the call even with a return value")
	}
	if !strings.Contains(res.Error, "something looks off") {
		t.Errorf("Error = %q, want the diagnostic text", res.Error)
	}
}

func TestRunBlocksAmbientFacilities(t *testing.T) {
	for _, code := range []string{
		"function solution()\n    return os.time()\nend",
		"function solution()\n    return io.open('/etc/passwd')\nend",
		"function solution()\n    return require('socket')\nend",
		"function solution()\n    return load('return 1')()\nend",
	} {
		res := testRunner().Run(context.Background(), code, LanguageLua)
		if res.Success {
			t.Errorf("expected sandbox to block: %s", code)
		}
	}
}

func TestRunIsIdempotent(t *testing.T) {
	code := `
function solution()
    local words = {"racecar", "hello", "level", "world", "radar"}
    local count = 0
    for _, w in ipairs(words) do
        if w == string.reverse(w) then
            count = count + 1
        end
    end
    return count
end
`
	r := testRunner()
	first := r.Run(context.Background(), code, LanguageLua)
	for i := 0; i < 5; i++ {
		next := r.Run(context.Background(), code, LanguageLua)
		if next != first {
			t.Fatalf("run %d diverged: %+v != %+v", i, next, first)
		}
	}
	if first.Output != "3" {
		t.Errorf("Output = %q, want %q", first.Output, "3")
	}
}

func TestRunEnforcesTimeout(t *testing.T) {
	r := NewRunner(100 * time.Millisecond)
	start := time.Now()
	res := r.Run(context.Background(), `
function solution()
    while true do end
end
`, LanguageLua)

	if res.Success {
		t.Fatal("expected timeout failure")
	}
	if !strings.Contains(res.Error, "timed out") {
		t.Errorf("Error = %q, want timeout error", res.Error)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("run took %s, timeout not enforced", elapsed)
	}
}

func TestRunEnforcesTimeoutDuringDefinition(t *testing.T) {
	r := NewRunner(100 * time.Millisecond)
	start := time.Now()
	res := r.Run(context.Background(), `
while true do end

function solution()
    return 1
end
`, LanguageLua)

	if res.Success {
		t.Fatal("expected timeout failure")
	}
	if !strings.Contains(res.Error, "timed out") {
		t.Errorf("Error = %q, want timeout error", res.Error)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("run took %s, timeout not enforced", elapsed)
	}
}

func TestRunUnimplementedLanguages(t *testing.T) {
	r := testRunner()
	for _, lang := range []Language{LanguagePython, LanguageJavaScript} {
		res := r.Run(context.Background(), "def solution(): pass", lang)
		if res.Success {
			t.Errorf("%s: expected not-implemented failure", lang)
		}
		if !strings.Contains(res.Error, "not implemented") {
			t.Errorf("%s: Error = %q, want not-implemented message", lang, res.Error)
		}
	}
}

func TestRunUnknownLanguage(t *testing.T) {
	res := testRunner().Run(context.Background(), "whatever", Language("cobol"))
	if res.Success {
		t.Fatal("expected failure for unknown language")
	}
	if !strings.Contains(res.Error, "unsupported language") {
		t.Errorf("Error = %q, want unsupported-language message", res.Error)
	}
}
