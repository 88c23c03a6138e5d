package interps

import (
	starlarkjson "go.starlark.net/lib/json"
	starlarkmath "go.starlark.net/lib/math"
	starlarktime "go.starlark.net/lib/time"
	"go.starlark.net/starlark"
)

// BaseEnv is the immutable set of names that is always visible to
// executed code: the starlark universe (type constructors, iteration and
// aggregation helpers, print) plus a curated set of modules.
type BaseEnv struct {
	dict starlark.StringDict
}

func NewBaseEnv(modules []string) BaseEnv {
	dict := make(starlark.StringDict)
	for _, name := range modules {
		switch name {
		case "math":
			dict["math"] = starlarkmath.Module
		case "time":
			dict["time"] = starlarktime.Module
		case "json":
			dict["json"] = starlarkjson.Module
		}
	}
	return BaseEnv{
		dict: dict,
	}
}

// Snapshot returns a fresh copy, so callers can merge into it freely.
func (b BaseEnv) Snapshot() starlark.StringDict {
	ret := make(starlark.StringDict, len(b.dict))
	for name, value := range b.dict {
		ret[name] = value
	}
	return ret
}

// IsReserved reports whether name belongs to the base environment,
// including the universe names the resolver provides implicitly.
func (b BaseEnv) IsReserved(name string) bool {
	if _, ok := b.dict[name]; ok {
		return true
	}
	return starlark.Universe.Has(name)
}
