package main

import (
	rockplan "github.com/rockplan/rockplan/internal/apps/rockplan/cmds"
	"github.com/rockplan/rockplan/internal/logs"
	"github.com/rockplan/rockplan/internal/runtime"
)

func main() {
	logs.SetComponent("rockplan")

	rt := runtime.New()

	var execErr error
	defer rt.Finalize("rockplan", "Type 'rockplan help' to get help.", &execErr)

	execErr = rockplan.Execute(rt)
}
