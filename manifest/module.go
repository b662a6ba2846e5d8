package manifest

import (
	"fmt"
	"sync"

	"github.com/reusee/dscope"
	"github.com/reusee/moo/cmds"
	"github.com/reusee/moo/configs"
	"github.com/reusee/moo/logs"
	"github.com/reusee/moo/vars"
)

type Module struct {
	dscope.Module
	Configs configs.Module
}

var worldFlag = cmds.Var[string]("-world")

type WorldPath string

func (Module) WorldPath(
	loader configs.Loader,
) WorldPath {
	return WorldPath(vars.FirstNonZero(
		*worldFlag,
		configs.First[string](loader, "world"),
	))
}

type LoadWorld func() (*World, error)

func (Module) LoadWorld(
	path WorldPath,
	logger logs.Logger,
) LoadWorld {
	return sync.OnceValues(func() (*World, error) {
		if path == "" {
			return nil, fmt.Errorf("%w: no world given, use -world or the world setting", ErrBadManifest)
		}
		world, err := Load(string(path))
		if err != nil {
			return nil, err
		}
		logger.Info("world loaded",
			"path", path,
			"verbs", len(world.Verbs()),
		)
		return world, nil
	})
}
