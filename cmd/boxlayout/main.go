package main

import "github.com/agiangrant/boxlayout/cmd/boxlayout/commands"

func main() {
	commands.Execute()
}
