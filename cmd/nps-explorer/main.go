package main

import "github.com/pfrederiksen/nps-explorer/internal/cli"

func main() {
	cli.Execute()
}
