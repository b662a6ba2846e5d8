package main

import (
	"github.com/reusee/dscope"
	"github.com/reusee/moo/builtins"
	"github.com/reusee/moo/debugs"
	"github.com/reusee/moo/manifest"
	"github.com/reusee/moo/moovm"
	"github.com/reusee/moo/storages"
)

type Module struct {
	dscope.Module
	VM       moovm.Module
	Builtins builtins.Module
	Manifest manifest.Module
	Storages storages.Module
	Debugs   debugs.Module
}
