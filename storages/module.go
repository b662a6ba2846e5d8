package storages

import (
	"github.com/reusee/dscope"
	"github.com/reusee/moo/cmds"
	"github.com/reusee/moo/configs"
	"github.com/reusee/moo/vars"
)

type Module struct {
	dscope.Module
	Configs configs.Module
}

// DBPath is the SQLite verb database, empty if none is configured.
type DBPath string

var dbFlag = cmds.Var[string]("-db")

func (Module) DBPath(
	loader configs.Loader,
) DBPath {
	return DBPath(vars.FirstNonZero(
		*dbFlag,
		configs.First[string](loader, "db"),
	))
}
