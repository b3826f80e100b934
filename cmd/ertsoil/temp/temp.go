// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package temp is a metapackage for commands
// that dealt with soil temperature logs.
package temp

import (
	"github.com/js-arias/command"
	"github.com/js-arias/ertsoil/cmd/ertsoil/temp/filter"
	"github.com/js-arias/ertsoil/cmd/ertsoil/temp/match"
	"github.com/js-arias/ertsoil/cmd/ertsoil/temp/plot"
)

var Command = &command.Command{
	Usage: "temp <command> [<argument>...]",
	Short: "commands for soil temperature logs",
}

func init() {
	Command.Add(filter.Command)
	Command.Add(match.Command)
	Command.Add(plot.Command)
}
