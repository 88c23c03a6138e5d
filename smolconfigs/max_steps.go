package smolconfigs

import (
	"github.com/reusee/smol/cmds"
	"github.com/reusee/smol/configs"
	"github.com/reusee/smol/vars"
)

// MaxSteps bounds the starlark step counter per execution. Zero means
// unbounded.
type MaxSteps uint64

var _ configs.Configurable = MaxSteps(0)

func (m MaxSteps) ConfigExpr() string {
	return "MaxSteps"
}

var maxStepsFlag = cmds.Var[uint64]("-max-steps")

func (Module) MaxSteps(
	loader configs.Loader,
) MaxSteps {
	return MaxSteps(vars.FirstNonZero(
		*maxStepsFlag,
		configs.First[uint64](loader, "max_steps"),
	))
}
