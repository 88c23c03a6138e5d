package systools

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/reusee/dscope"
	"github.com/reusee/smol/interps"
	"github.com/reusee/smol/modes"
)

func testInterpreter(t *testing.T) *interps.Interpreter {
	var interpreter *interps.Interpreter
	dscope.New(
		new(interps.Module),
		modes.ForTest(t),
	).Fork(
		func() interps.Output {
			return io.Discard
		},
	).Call(func(
		newInterpreter interps.NewInterpreter,
	) {
		interpreter = newInterpreter()
		for _, desc := range All() {
			if err := interpreter.RegisterTool(desc); err != nil {
				t.Fatal(err)
			}
		}
	})
	return interpreter
}

func TestAll(t *testing.T) {
	names := make(map[string]bool)
	for _, desc := range All() {
		names[desc.Name] = true
		if desc.Description == "" {
			t.Fatalf("%s: should have a description", desc.Name)
		}
		if desc.Func == nil {
			t.Fatalf("%s: should have a callable", desc.Name)
		}
	}
	for _, name := range []string{"run_shell", "read_file", "write_file"} {
		if !names[name] {
			t.Fatalf("missing %s", name)
		}
	}
}

func TestRunShell(t *testing.T) {
	interpreter := testInterpreter(t)
	session := interps.NewSession()
	ctx := context.Background()

	result := interpreter.Execute(ctx, "r = run_shell('echo hello')", session)
	if result.Err != nil {
		t.Fatal(result.Err)
	}
	r := result.Bindings["r"].(map[string]any)
	if r["returncode"] != int64(0) {
		t.Fatalf("got %v", r)
	}
	if r["stdout"] != "hello\n" {
		t.Fatalf("got %v", r)
	}

	result = interpreter.Execute(ctx, "r = run_shell('exit 3')", session)
	if result.Err != nil {
		t.Fatal(result.Err)
	}
	r = result.Bindings["r"].(map[string]any)
	if r["returncode"] != int64(3) {
		t.Fatalf("got %v", r)
	}
}

func TestFileRoundTrip(t *testing.T) {
	interpreter := testInterpreter(t)
	session := interps.NewSession()
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "note.txt")
	session.Bind("path", path)

	result := interpreter.Execute(ctx, "write_file(path, 'line one')", session)
	if result.Err != nil {
		t.Fatal(result.Err)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(content) != "line one" {
		t.Fatalf("got %q", content)
	}

	result = interpreter.Execute(ctx, "read_file(path)", session)
	if result.Err != nil {
		t.Fatal(result.Err)
	}
	if result.Value != "line one" {
		t.Fatalf("got %#v", result.Value)
	}
}

func TestReadMissingFileFaults(t *testing.T) {
	interpreter := testInterpreter(t)
	session := interps.NewSession()

	result := interpreter.Execute(
		context.Background(),
		"read_file('/no/such/file')",
		session,
	)
	if result.Err == nil {
		t.Fatal("should fault")
	}
	if result.Err.Kind != interps.ToolInvocationFault {
		t.Fatalf("got %v", result.Err.Kind)
	}
}
