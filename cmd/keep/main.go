package main

import (
	"github.com/keep-cli/keep/internal/cli"
	"github.com/keep-cli/keep/internal/util"
)

func main() {
	if err := cli.Execute(); err != nil {
		util.HandleError(err)
	}
}
