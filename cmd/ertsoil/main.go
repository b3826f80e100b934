// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Ertsoil is a tool for the temperature calibration
// of electrical resistivity surveys
// and the estimation of soil water content.
package main

import (
	"github.com/js-arias/command"
	"github.com/js-arias/ertsoil/cmd/ertsoil/calibcmd"
	"github.com/js-arias/ertsoil/cmd/ertsoil/convert"
	"github.com/js-arias/ertsoil/cmd/ertsoil/param"
	"github.com/js-arias/ertsoil/cmd/ertsoil/prj"
	"github.com/js-arias/ertsoil/cmd/ertsoil/runcmd"
	"github.com/js-arias/ertsoil/cmd/ertsoil/temp"
	"github.com/js-arias/ertsoil/cmd/ertsoil/watercmd"
)

var app = &command.Command{
	Usage: "ertsoil <command> [<argument>...]",
	Short: "a tool for temperature calibration of resistivity surveys",
}

func init() {
	app.Add(prj.Command)
	app.Add(param.Command)
	app.Add(convert.Command)
	app.Add(temp.Command)
	app.Add(calibcmd.Command)
	app.Add(watercmd.Command)
	app.Add(runcmd.Command)
}

func main() {
	app.Main()
}
