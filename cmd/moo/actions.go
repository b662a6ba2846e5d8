package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/reusee/moo/configs"
	"github.com/reusee/moo/debugs"
	"github.com/reusee/moo/logs"
	"github.com/reusee/moo/manifest"
	"github.com/reusee/moo/moovm"
	"github.com/reusee/moo/storages"
	"github.com/reusee/moo/vars"
)

var errNoDB = errors.New("no verb database, use -db or the db setting")

// resolver picks the verb source: the SQLite database if one is configured,
// the world manifest otherwise.
func resolver(ctx context.Context, scope Scope) (objects moovm.Resolver, release func() error, err error) {
	scope.Call(func(
		dbPath storages.DBPath,
		loadWorld manifest.LoadWorld,
	) {
		if dbPath != "" {
			var reg *storages.SQLiteRegistry
			reg, err = storages.OpenSQLite(ctx, string(dbPath))
			if err != nil {
				return
			}
			objects = reg
			release = reg.Close
			return
		}
		var world *manifest.World
		world, err = loadWorld()
		if err != nil {
			return
		}
		objects = world.Registry()
		release = func() error {
			return nil
		}
	})
	return
}

// entryProgram is the root program of a run. An entry verb becomes a program
// that calls it and answers its result.
func entryProgram(scope Scope) (p *moovm.Program, err error) {
	scope.Call(func(
		loader configs.Loader,
		loadWorld manifest.LoadWorld,
	) {
		entry := vars.FirstNonZero(
			*entryFlag,
			configs.First[string](loader, "entry"),
		)
		if entry == "" {
			var world *manifest.World
			world, err = loadWorld()
			if err != nil {
				return
			}
			p, err = world.Program("main")
			return
		}
		obj, verb, ok := strings.Cut(entry, ":")
		if !ok {
			err = fmt.Errorf("bad entry %q, expecting #obj:verb", entry)
			return
		}
		p = &moovm.Program{
			Name:     "entry",
			Literals: []moovm.Value{moovm.ObjID(obj), moovm.Str(verb), moovm.List{}},
			Code: []moovm.OpCode{
				moovm.OpImm, 0,
				moovm.OpImm, 1,
				moovm.OpImm, 2,
				moovm.OpCallVerb,
				moovm.OpRet,
			},
		}
	})
	return
}

func run(ctx context.Context, scope Scope, out io.Writer) (err error) {
	objects, release, err := resolver(ctx, scope)
	if err != nil {
		return err
	}
	defer func() {
		if e := release(); e != nil && err == nil {
			err = wrap(e)
		}
	}()

	p, err := entryProgram(scope)
	if err != nil {
		return err
	}

	scope.Fork(
		func() moovm.Resolver {
			return objects
		},
	).Call(func(
		vm *moovm.VM,
		logger logs.Logger,
		tap debugs.Tap,
	) {
		logger.DebugContext(ctx, "run", "program", p.Name)
		task := vm.Start(p)
		for !task.Done {
			if err = vm.Resume(ctx, task); err != nil {
				if *tapFlag {
					tap(ctx, "run failed", debugs.TaskGlobals(task))
				}
				return
			}
		}
		_, err = fmt.Fprintln(out, task.Result.String())
	})
	return
}

func disasm(ctx context.Context, scope Scope, out io.Writer) (err error) {
	scope.Call(func(
		loadWorld manifest.LoadWorld,
	) {
		var world *manifest.World
		world, err = loadWorld()
		if err != nil {
			return
		}
		names := world.Verbs()
		if world.Main != nil {
			names = append([]string{"main"}, names...)
		}
		for i, name := range names {
			if i > 0 {
				if _, err = fmt.Fprintln(out); err != nil {
					return
				}
			}
			var p *moovm.Program
			p, err = world.Program(name)
			if err != nil {
				return
			}
			if err = moovm.Disassemble(out, p); err != nil {
				return
			}
		}
	})
	return
}

func encode(ctx context.Context, scope Scope, name string, outPath string) (err error) {
	scope.Call(func(
		loadWorld manifest.LoadWorld,
		logger logs.Logger,
	) {
		var world *manifest.World
		world, err = loadWorld()
		if err != nil {
			return
		}
		var p *moovm.Program
		p, err = world.Program(name)
		if err != nil {
			return
		}
		var data []byte
		data, err = moovm.MarshalProgram(p)
		if err != nil {
			return
		}
		if err = os.WriteFile(outPath, data, 0o644); err != nil {
			err = wrap(err)
			return
		}
		logger.InfoContext(ctx, "program encoded",
			"program", name,
			"path", outPath,
			"bytes", len(data),
		)
	})
	return
}

func importWorld(ctx context.Context, scope Scope, _ io.Writer) (err error) {
	scope.Call(func(
		dbPath storages.DBPath,
		loadWorld manifest.LoadWorld,
		logger logs.Logger,
	) {
		if dbPath == "" {
			err = errNoDB
			return
		}
		var world *manifest.World
		world, err = loadWorld()
		if err != nil {
			return
		}
		var reg *storages.SQLiteRegistry
		reg, err = storages.OpenSQLite(ctx, string(dbPath))
		if err != nil {
			return
		}
		defer reg.Close()
		if err = reg.DefineAll(ctx, world.Registry()); err != nil {
			return
		}
		logger.InfoContext(ctx, "world imported",
			"db", dbPath,
			"verbs", len(world.Verbs()),
		)
	})
	return
}

func listObjects(ctx context.Context, scope Scope, out io.Writer) (err error) {
	scope.Call(func(
		dbPath storages.DBPath,
	) {
		if dbPath == "" {
			err = errNoDB
			return
		}
		var reg *storages.SQLiteRegistry
		reg, err = storages.OpenSQLite(ctx, string(dbPath))
		if err != nil {
			return
		}
		defer reg.Close()
		var objects []moovm.ObjID
		objects, err = reg.Objects(ctx)
		if err != nil {
			return
		}
		for _, obj := range objects {
			if _, err = fmt.Fprintln(out, obj); err != nil {
				return
			}
		}
	})
	return
}
