package smolconfigs

import (
	"github.com/reusee/smol/cmds"
	"github.com/reusee/smol/configs"
)

// Modules selects the library modules merged into the base environment.
type Modules []string

var _ configs.Configurable = Modules(nil)

func (m Modules) ConfigExpr() string {
	return "Modules"
}

var modulesFlag = cmds.Collect[string]("-module")

func (Module) Modules(
	loader configs.Loader,
) Modules {

	// flag
	if ms := *modulesFlag; len(ms) > 0 {
		return Modules(ms)
	}

	// config
	if ms := configs.First[[]string](loader, "modules"); len(ms) > 0 {
		return Modules(ms)
	}

	return Modules{"math", "time", "json"}
}
