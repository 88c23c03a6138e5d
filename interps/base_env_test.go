package interps

import (
	"testing"

	"go.starlark.net/starlark"
)

func TestBaseEnvModules(t *testing.T) {
	base := NewBaseEnv([]string{"math", "json"})
	dict := base.Snapshot()
	if _, ok := dict["math"]; !ok {
		t.Fatalf("got %v", dict)
	}
	if _, ok := dict["json"]; !ok {
		t.Fatalf("got %v", dict)
	}
	if _, ok := dict["time"]; ok {
		t.Fatalf("got %v", dict)
	}
}

func TestBaseEnvSnapshotIsCopy(t *testing.T) {
	base := NewBaseEnv([]string{"math"})
	dict := base.Snapshot()
	dict["math"] = starlark.None
	dict["extra"] = starlark.None

	fresh := base.Snapshot()
	if len(fresh) != 1 {
		t.Fatalf("got %v", fresh)
	}
	if fresh["math"] == starlark.None {
		t.Fatal("snapshot must not alias the base dict")
	}
}

func TestBaseEnvIsReserved(t *testing.T) {
	base := NewBaseEnv([]string{"math"})

	for _, name := range []string{"math", "len", "print", "bool"} {
		if !base.IsReserved(name) {
			t.Fatalf("%s should be reserved", name)
		}
	}
	for _, name := range []string{"time", "x", "_result"} {
		if base.IsReserved(name) {
			t.Fatalf("%s should not be reserved", name)
		}
	}
}
