// Package main is the entry point for fastvideo.
package main

import (
	"github.com/fastvideo-cli/fastvideo/cmd"
	"github.com/fastvideo-cli/fastvideo/config"
	"github.com/fastvideo-cli/fastvideo/log"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	cmd.Execute()
}
