package interps

import (
	"testing"

	"go.starlark.net/starlark"
)

func TestSessionIDs(t *testing.T) {
	a := NewSession()
	b := NewSession()
	if a.ID() == "" {
		t.Fatal("should have an id")
	}
	if a.ID() == b.ID() {
		t.Fatal("ids should be distinct")
	}
}

func TestSessionApplyMerges(t *testing.T) {
	session := NewSession()

	session.Apply(starlark.StringDict{
		"x": starlark.MakeInt(1),
		"y": starlark.MakeInt(2),
	})
	session.Apply(starlark.StringDict{
		"y": starlark.MakeInt(3),
		"z": starlark.MakeInt(4),
	})

	state := session.Inspect()
	if len(state) != 3 {
		t.Fatalf("got %v", state)
	}
	if state["x"] != int64(1) || state["y"] != int64(3) || state["z"] != int64(4) {
		t.Fatalf("got %v", state)
	}
}

func TestSessionCurrentIsCopy(t *testing.T) {
	session := NewSession()
	session.Apply(starlark.StringDict{
		"x": starlark.MakeInt(1),
	})

	current := session.Current()
	delete(current, "x")
	current["y"] = starlark.MakeInt(2)

	state := session.Inspect()
	if len(state) != 1 || state["x"] != int64(1) {
		t.Fatalf("got %v", state)
	}
}

func TestSessionReset(t *testing.T) {
	session := NewSession()
	session.Apply(starlark.StringDict{
		"x": starlark.MakeInt(1),
	})
	session.Reset()
	if len(session.Inspect()) != 0 {
		t.Fatalf("got %v", session.Inspect())
	}
}

func TestSessionBindGet(t *testing.T) {
	session := NewSession()
	session.Bind("name", "smol")
	session.Bind("count", 3)

	value, ok := session.Get("name")
	if !ok {
		t.Fatal("should be bound")
	}
	if value != "smol" {
		t.Fatalf("got %#v", value)
	}

	value, ok = session.Get("count")
	if !ok {
		t.Fatal("should be bound")
	}
	if value != int64(3) {
		t.Fatalf("got %#v", value)
	}

	if _, ok := session.Get("missing"); ok {
		t.Fatal("should not be bound")
	}
}
