package interps

import (
	"fmt"
	"reflect"
	"slices"
	"sync"

	"github.com/reusee/starlarkutil"
	"go.starlark.net/starlark"
)

// Param describes one tool parameter for the caller's model loop.
type Param struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
}

// ToolDescriptor is an externally supplied capability. Func is either a
// plain Go function or a starlark.Callable; its side effects are opaque
// to the engine.
type ToolDescriptor struct {
	Name        string
	Description string
	Params      map[string]Param
	Func        any
}

// Schema returns the JSON-schema-shaped declaration callers feed to an
// LLM.
func (t ToolDescriptor) Schema() map[string]any {
	properties := make(map[string]any, len(t.Params))
	var required []string
	for name, param := range t.Params {
		properties[name] = map[string]any{
			"type":        param.Type,
			"description": param.Description,
		}
		if param.Required {
			required = append(required, name)
		}
	}
	slices.Sort(required)
	return map[string]any{
		"name":        t.Name,
		"description": t.Description,
		"parameters": map[string]any{
			"type":       "object",
			"properties": properties,
			"required":   required,
		},
	}
}

type DuplicateToolError struct {
	Name string
}

var _ error = new(DuplicateToolError)

func (d *DuplicateToolError) Error() string {
	return fmt.Sprintf("duplicate tool name: %s", d.Name)
}

// ToolFault tags a fault raised from inside a tool callable, so Execute
// can classify it apart from faults in the snippet itself.
type ToolFault struct {
	Tool string
	Err  error
}

var _ error = new(ToolFault)

func (t *ToolFault) Error() string {
	return fmt.Sprintf("tool %s: %v", t.Tool, t.Err)
}

func (t *ToolFault) Unwrap() error {
	return t.Err
}

// Registry holds the tools visible to a session's executions. Tools are
// immutable once registered.
type Registry struct {
	mu    sync.Mutex
	base  BaseEnv
	descs map[string]ToolDescriptor
	funcs starlark.StringDict
}

func NewRegistry(base BaseEnv) *Registry {
	return &Registry{
		base:  base,
		descs: make(map[string]ToolDescriptor),
		funcs: make(starlark.StringDict),
	}
}

// Register adds a tool. Registration fails when the name collides with
// an existing tool or a base environment name; the first registration
// wins.
func (r *Registry) Register(desc ToolDescriptor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.descs[desc.Name]; ok {
		return &DuplicateToolError{Name: desc.Name}
	}
	if r.base.IsReserved(desc.Name) {
		return &DuplicateToolError{Name: desc.Name}
	}

	callable, err := makeToolCallable(desc)
	if err != nil {
		return err
	}
	r.descs[desc.Name] = desc
	r.funcs[desc.Name] = callable

	return nil
}

// Resolve returns the name-to-callable mapping merged into the execution
// namespace.
func (r *Registry) Resolve() starlark.StringDict {
	r.mu.Lock()
	defer r.mu.Unlock()
	ret := make(starlark.StringDict, len(r.funcs))
	for name, fn := range r.funcs {
		ret[name] = fn
	}
	return ret
}

// Describe returns the registered descriptors, name-sorted for
// deterministic prompt assembly.
func (r *Registry) Describe() []ToolDescriptor {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.descs))
	for name := range r.descs {
		names = append(names, name)
	}
	slices.Sort(names)
	ret := make([]ToolDescriptor, 0, len(names))
	for _, name := range names {
		ret = append(ret, r.descs[name])
	}
	return ret
}

func (r *Registry) has(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.descs[name]
	return ok
}

// makeToolCallable wraps the descriptor's callable so that any error or
// panic raised inside it carries a ToolFault tag.
func makeToolCallable(desc ToolDescriptor) (starlark.Callable, error) {
	var inner starlark.Callable

	switch fn := desc.Func.(type) {

	case nil:
		return nil, wrap(fmt.Errorf("tool %s: nil callable", desc.Name))

	case starlark.Callable:
		inner = fn

	default:
		fnType := reflect.TypeOf(desc.Func)
		if fnType.Kind() != reflect.Func {
			return nil, wrap(fmt.Errorf("tool %s: callable must be a function, got %T", desc.Name, desc.Func))
		}
		if n := fnType.NumOut(); n > 0 && fnType.Out(n-1) == errType {
			// the trailing error must become the call error, not a
			// tuple element
			inner = makeErrReturningCallable(desc.Name, desc.Func)
		} else {
			inner = starlarkutil.MakeFunc(desc.Name, desc.Func)
		}
	}

	name := desc.Name
	return starlark.NewBuiltin(name, func(
		thread *starlark.Thread,
		builtin *starlark.Builtin,
		args starlark.Tuple,
		kwargs []starlark.Tuple,
	) (ret starlark.Value, err error) {
		defer func() {
			if p := recover(); p != nil {
				err = &ToolFault{
					Tool: name,
					Err:  fmt.Errorf("panic: %v", p),
				}
			}
		}()
		ret, err = starlark.Call(thread, inner, args, kwargs)
		if err != nil {
			err = &ToolFault{
				Tool: name,
				Err:  err,
			}
		}
		return
	}), nil
}

var errType = reflect.TypeFor[error]()

// makeErrReturningCallable converts a Go function whose last result is
// an error. The error flows out as the starlark call error; the leading
// results become the value.
func makeErrReturningCallable(name string, fn any) starlark.Callable {
	fnValue := reflect.ValueOf(fn)
	fnType := fnValue.Type()

	return starlark.NewBuiltin(name, func(
		thread *starlark.Thread,
		builtin *starlark.Builtin,
		args starlark.Tuple,
		kwargs []starlark.Tuple,
	) (starlark.Value, error) {

		if len(kwargs) > 0 {
			return nil, fmt.Errorf("%s: unexpected keyword arguments", name)
		}

		numIn := fnType.NumIn()
		numFixed := numIn
		if fnType.IsVariadic() {
			numFixed--
			if len(args) < numFixed {
				return nil, fmt.Errorf("%s: got %d arguments, want at least %d", name, len(args), numFixed)
			}
		} else if len(args) != numIn {
			return nil, fmt.Errorf("%s: got %d arguments, want %d", name, len(args), numIn)
		}

		callArgs := make([]reflect.Value, 0, len(args))
		for i, arg := range args {
			var paramType reflect.Type
			if i < numFixed {
				paramType = fnType.In(i)
			} else {
				paramType = fnType.In(numIn - 1).Elem()
			}
			value, err := toGoValue(arg, paramType)
			if err != nil {
				return nil, fmt.Errorf("%s: argument %d: %w", name, i+1, err)
			}
			callArgs = append(callArgs, value)
		}

		rets := fnValue.Call(callArgs)

		last := rets[len(rets)-1]
		if !last.IsNil() {
			return nil, last.Interface().(error)
		}
		rets = rets[:len(rets)-1]

		switch len(rets) {
		case 0:
			return starlark.None, nil
		case 1:
			return toStarlarkValue(rets[0].Interface()), nil
		}
		elems := make([]starlark.Value, len(rets))
		for i, ret := range rets {
			elems[i] = toStarlarkValue(ret.Interface())
		}
		return starlark.Tuple(elems), nil
	})
}
