package interps

import (
	"context"
	"errors"
	"fmt"

	"github.com/reusee/smol/logs"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// ResultName is the reserved name a statement sequence may assign to
// surface a value. It is consumed by the engine: never reported as a
// binding, never persisted.
const ResultName = "_result"

const inputFilename = "<input>"

const ctxLocalKey = "smol.ctx"

// REPL-style dialect: mutation, loops and control flow at top level,
// reassignable globals across and within chunks.
var fileOptions = &syntax.FileOptions{
	Set:             true,
	While:           true,
	TopLevelControl: true,
	GlobalReassign:  true,
	Recursion:       true,
}

// Interpreter executes code chunks against sessions. All per-caller
// state lives in the Session; the interpreter itself only grows by tool
// registration.
type Interpreter struct {
	logger   logs.Logger
	newSpan  logs.NewSpan
	base     BaseEnv
	registry *Registry
	tee      *Tee
	maxSteps uint64
}

func (i *Interpreter) RegisterTool(desc ToolDescriptor) error {
	return i.registry.Register(desc)
}

// Tools returns the registered descriptors, name-sorted.
func (i *Interpreter) Tools() []ToolDescriptor {
	return i.registry.Describe()
}

func (i *Interpreter) ResetSession(sess *Session) {
	sess.Reset()
}

func (i *Interpreter) InspectState(sess *Session) map[string]any {
	return sess.Inspect()
}

// Context returns the context Execute stored on the thread, for tool
// callables that accept a *starlark.Thread.
func Context(thread *starlark.Thread) context.Context {
	if v := thread.Local(ctxLocalKey); v != nil {
		return v.(context.Context)
	}
	return context.Background()
}

type mode string

const (
	modeExpression mode = "expression"
	modeStatements mode = "statements"
)

// Execute runs one code chunk against the session and always returns an
// envelope; faults land in Result.Err, never in a panic or a raw error.
//
// The execution namespace is base environment, then tools, then current
// session bindings. Reported bindings are the names present afterwards
// that were absent from that frozen pre-call namespace; reserved names
// may be shadowed during the call but are neither reported nor
// persisted. Nothing is persisted when the chunk faults.
func (i *Interpreter) Execute(ctx context.Context, code string, sess *Session) Result {
	sess.inFlight.Acquire()
	defer sess.inFlight.Release()

	ctx, _ = i.newSpan(ctx, "")

	env := i.base.Snapshot()
	for name, value := range i.registry.Resolve() {
		env[name] = value
	}
	for name, value := range sess.Current() {
		env[name] = value
	}
	preKeys := make(map[string]bool, len(env))
	for name := range env {
		preKeys[name] = true
	}

	thread := &starlark.Thread{
		Name: sess.ID(),
		Print: func(_ *starlark.Thread, msg string) {
			fmt.Fprintln(i.tee, msg)
		},
	}
	thread.SetLocal(ctxLocalKey, ctx)
	if i.maxSteps > 0 {
		thread.SetMaxExecutionSteps(i.maxSteps)
	}

	var value starlark.Value
	var execMode mode
	stdout, execErr := i.tee.Capture(func() (err error) {
		value, execMode, err = i.run(thread, code, env)
		return err
	})

	result := Result{
		Stdout:   stdout,
		Bindings: make(map[string]any),
	}

	if execErr != nil {
		result.Err = classifyFault(execErr)
		i.logger.InfoContext(ctx, "execute",
			"session", sess.ID(),
			"mode", execMode,
			"fault", result.Err.Kind,
		)
		return result
	}

	if execMode == modeStatements {
		persist := make(starlark.StringDict, len(env))
		for name, v := range env {
			if i.base.IsReserved(name) || i.registry.has(name) {
				continue
			}
			if name == ResultName {
				value = v
				continue
			}
			persist[name] = v
			if !preKeys[name] {
				result.Bindings[name] = fromStarlarkValue(v)
			}
		}
		sess.Apply(persist)
	}

	if value != nil {
		result.Value = fromStarlarkValue(value)
	}

	i.logger.InfoContext(ctx, "execute",
		"session", sess.ID(),
		"mode", execMode,
		"bindings", len(result.Bindings),
	)
	return result
}

// run selects the execution mode by a parse attempt: a chunk that parses
// as a single expression is evaluated for its value; anything else runs
// as a REPL chunk whose top-level assignments land in env.
func (i *Interpreter) run(
	thread *starlark.Thread,
	code string,
	env starlark.StringDict,
) (
	value starlark.Value,
	execMode mode,
	err error,
) {

	if expr, exprErr := fileOptions.ParseExpr(inputFilename, code, 0); exprErr == nil {
		execMode = modeExpression
		value, err = starlark.EvalExprOptions(fileOptions, thread, expr, env)
		if err != nil {
			return nil, execMode, err
		}
		return value, execMode, nil
	}

	execMode = modeStatements

	file, parseErr := fileOptions.Parse(inputFilename, code, 0)
	if parseErr != nil {
		return nil, execMode, parseFailure{err: parseErr}
	}

	if err := starlark.ExecREPLChunk(file, thread, env); err != nil {
		return nil, execMode, err
	}

	return nil, execMode, nil
}

// parseFailure marks errors from the parser proper, as opposed to
// resolve and evaluation faults on structurally valid code.
type parseFailure struct {
	err error
}

var _ error = parseFailure{}

func (p parseFailure) Error() string {
	return p.err.Error()
}

func (p parseFailure) Unwrap() error {
	return p.err
}

func classifyFault(err error) *Fault {
	var toolFault *ToolFault
	if errors.As(err, &toolFault) {
		return &Fault{
			Kind:    ToolInvocationFault,
			Message: toolFault.Error(),
		}
	}

	var parseFault parseFailure
	if errors.As(err, &parseFault) {
		return &Fault{
			Kind:    ParseFailure,
			Message: parseFault.Error(),
		}
	}

	var evalErr *starlark.EvalError
	if errors.As(err, &evalErr) {
		return &Fault{
			Kind:    RuntimeFault,
			Message: evalErr.Msg,
		}
	}

	return &Fault{
		Kind:    RuntimeFault,
		Message: err.Error(),
	}
}
