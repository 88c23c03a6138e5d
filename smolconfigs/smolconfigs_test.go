package smolconfigs

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/reusee/dscope"
	"github.com/reusee/smol/configs"
	"github.com/reusee/smol/modes"
)

func TestDefaults(t *testing.T) {
	dscope.New(
		new(Module),
		modes.ForTest(t),
	).Call(func(
		maxSteps MaxSteps,
		modules Modules,
	) {
		if maxSteps != 0 {
			t.Fatalf("got %v", maxSteps)
		}
		if str := fmt.Sprintf("%v", modules); str != "[math time json]" {
			t.Fatalf("got %s", str)
		}
	})
}

func TestConfigValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "smol.cue")
	if err := os.WriteFile(path, []byte(`
max_steps: 42
modules: ["math"]
`), 0644); err != nil {
		t.Fatal(err)
	}

	dscope.New(
		new(Module),
		modes.ForTest(t),
	).Fork(
		func() configs.Loader {
			return configs.NewLoader([]string{path}, schema)
		},
	).Call(func(
		maxSteps MaxSteps,
		modules Modules,
	) {
		if maxSteps != 42 {
			t.Fatalf("got %v", maxSteps)
		}
		if str := fmt.Sprintf("%v", modules); str != "[math]" {
			t.Fatalf("got %s", str)
		}
	})
}

func TestSchemaRejectsUnknownField(t *testing.T) {
	path := filepath.Join(t.TempDir(), "smol.cue")
	if err := os.WriteFile(path, []byte(`
max_tokens: 42
`), 0644); err != nil {
		t.Fatal(err)
	}

	loader := configs.NewLoader([]string{path}, schema)
	var n int
	if err := loader.AssignFirst("max_tokens", &n); err == nil {
		t.Fatal("should error")
	}
}
