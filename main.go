package main

import (
	"os"

	"github.com/mensylisir/pmmlkit/command"
	"github.com/mensylisir/pmmlkit/logger"
)

func main() {
	if err := command.NewRootCommand().Execute(); err != nil {
		logger.Log.Error(err)
		os.Exit(1)
	}
}
