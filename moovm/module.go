package moovm

import (
	"github.com/reusee/dscope"
	"github.com/reusee/moo/cmds"
	"github.com/reusee/moo/configs"
	"github.com/reusee/moo/logs"
	"github.com/reusee/moo/vars"
)

// Module provides a *VM. The scope must also provide a Resolver and a
// BuiltinTable.
type Module struct {
	dscope.Module
	Configs configs.Module
}

type MaxDepth int

const DefaultMaxDepth = 50

var maxDepthFlag = cmds.Var[int]("-max-depth")

func init() {
	cmds.Define("-unlimited-depth", cmds.Func(func() {
		*maxDepthFlag = -1
	}).Desc("do not limit nested verb calls"))
}

func (Module) MaxDepth(
	loader configs.Loader,
) MaxDepth {
	if *maxDepthFlag < 0 {
		return 0
	}
	return MaxDepth(vars.FirstNonZero(
		*maxDepthFlag,
		configs.First[int](loader, "max_depth"),
		DefaultMaxDepth,
	))
}

func (Module) VM(
	objects Resolver,
	builtins BuiltinTable,
	maxDepth MaxDepth,
	logger logs.Logger,
) *VM {
	vm := New(objects, builtins)
	vm.MaxDepth = int(maxDepth)
	vm.Logger = logger
	return vm
}
