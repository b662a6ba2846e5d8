package configs

import (
	_ "embed"
	"os"
	"path/filepath"

	"github.com/reusee/dscope"
	"github.com/reusee/moo/cmds"
	"github.com/reusee/moo/logs"
	"github.com/reusee/moo/modes"
)

type Module struct {
	dscope.Module
	Logs logs.Module
}

//go:embed schema.cue
var Schema string

var configFiles = cmds.Collect[string]("-config")

func init() {
	cmds.Define("-config-help", cmds.Func(func() {
		os.Stdout.WriteString(Schema)
	}).Desc("print the settings schema"))
}

var fileNames = []string{
	"moo.cue",
	".moo.cue",
}

// Loader loads the files given by -config, then moo.cue or .moo.cue from the
// working directory and the user config directory. The default locations are
// not searched in ModeDevelopment.
func (Module) Loader(
	logger logs.Logger,
	mode modes.Mode,
) Loader {
	paths := append([]string(nil), *configFiles...)

	var dirs []string
	if mode != modes.ModeDevelopment {
		dirs = defaultDirs()
	}
	for _, dir := range dirs {
		for _, name := range fileNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				paths = append(paths, path)
			}
		}
	}

	if len(paths) > 0 {
		logger.Info("config files", "paths", paths)
	}
	return NewLoader(paths, Schema)
}

func defaultDirs() (ret []string) {
	if dir, err := os.Getwd(); err == nil {
		ret = append(ret, dir)
	}
	if dir, err := os.UserConfigDir(); err == nil {
		ret = append(ret, filepath.Join(dir, "moo"))
	}
	return
}
