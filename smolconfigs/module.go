package smolconfigs

import (
	"github.com/reusee/dscope"
	"github.com/reusee/smol/logs"
)

type Module struct {
	dscope.Module
	Logs logs.Module
}
