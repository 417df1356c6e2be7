package main

import (
	"github.com/lightsnake/engine/cmd/engine/commands"
)

func main() {
	commands.Execute()
}
