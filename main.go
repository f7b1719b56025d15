package main

import (
	"github.com/Captain-Vikram/To-Do-List/cmd"
	"github.com/Captain-Vikram/To-Do-List/internal/logger"
)

func main() {
	defer logger.HandlePanic()
	cmd.Execute()
}
