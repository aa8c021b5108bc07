package main

import (
	"os"

	"github.com/gravures/tomlraider/cmd"
	"github.com/gravures/tomlraider/pkg/logger"
)

func main() {
	exitCode := 0
	if err := cmd.Execute(); err != nil {
		exitCode = cmd.ExitCode(err)
	}

	logger.Sync()
	if exitCode != 0 {
		os.Exit(exitCode)
	}
}
