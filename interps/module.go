package interps

import (
	"io"
	"os"

	"github.com/reusee/dscope"
	"github.com/reusee/smol/logs"
	"github.com/reusee/smol/smolconfigs"
)

type Module struct {
	dscope.Module
	Logs    logs.Module
	Configs smolconfigs.Module
}

// Output is the real output channel executed code prints to.
type Output io.Writer

func (Module) Output() Output {
	return os.Stdout
}

type NewInterpreter func() *Interpreter

func (Module) NewInterpreter(
	logger logs.Logger,
	newSpan logs.NewSpan,
	output Output,
	maxSteps smolconfigs.MaxSteps,
	modules smolconfigs.Modules,
) NewInterpreter {
	return func() *Interpreter {
		base := NewBaseEnv(modules)
		return &Interpreter{
			logger:   logger,
			newSpan:  newSpan,
			base:     base,
			registry: NewRegistry(base),
			tee:      NewTee(output),
			maxSteps: uint64(maxSteps),
		}
	}
}
