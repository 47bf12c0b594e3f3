package main

import (
	"os"

	"proxym-fin/internal/cli"
	"proxym-fin/pkg/logger"
)

func main() {
	code := cli.Execute()
	logger.Sync()
	os.Exit(code)
}
