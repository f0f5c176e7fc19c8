package main

import "github.com/pfrederiksen/event-manager/internal/cli"

func main() {
	cli.Execute()
}
