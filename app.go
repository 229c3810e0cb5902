package main

import (
	"github.com/elC0mpa/finops-doctor/commands"
	"github.com/elC0mpa/finops-doctor/internal/logging"
)

func main() {
	defer logging.Sync()

	commands.Execute()
}
