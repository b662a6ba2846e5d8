package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/reusee/dscope"
	"github.com/reusee/moo/cmds"
	"github.com/reusee/moo/configs"
	"github.com/reusee/moo/logs"
	"github.com/reusee/moo/modes"
)

type action func(ctx context.Context, scope Scope, out io.Writer) error

var (
	selected action = run
	tapFlag         = cmds.Switch("-tap")
	entryFlag       = cmds.Var[string]("-entry")
)

func init() {
	cmds.Define("run", cmds.Func(func() {
		selected = run
	}).Desc("run the main program or the entry verb"))
	cmds.Define("disasm", cmds.Func(func() {
		selected = disasm
	}).Desc("disassemble every program of the world"))
	cmds.Define("encode", cmds.Func(func(name string, out string) {
		selected = func(ctx context.Context, scope Scope, _ io.Writer) error {
			return encode(ctx, scope, name, out)
		}
	}).Desc("write main or an #obj:verb program as CBOR"))
	cmds.Define("import", cmds.Func(func() {
		selected = importWorld
	}).Desc("store every verb of the world in the -db database"))
	cmds.Define("objects", cmds.Func(func() {
		selected = listObjects
	}).Desc("list the objects of the -db database"))
}

func main() {
	cmds.Execute(os.Args[1:])

	scope := dscope.New(
		new(Module),
		modes.ForProduction(),
	)
	applyLogLevel(scope)

	var err error
	scope.Call(func(
		newSpan logs.NewSpan,
	) {
		ctx, _ := newSpan(context.Background(), "")
		err = logs.WrapSpan(ctx, selected(ctx, scope, os.Stdout))
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func applyLogLevel(scope Scope) {
	scope.Call(func(
		loader configs.Loader,
	) {
		name := configs.First[string](loader, "log_level")
		if name == "" {
			return
		}
		var l slog.Level
		if err := l.UnmarshalText([]byte(name)); err != nil {
			panic(err)
		}
		logs.SetDefaultLevel(l)
	})
}
