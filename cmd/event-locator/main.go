package main

import "github.com/pfrederiksen/event-locator/internal/cli"

func main() {
	cli.Execute()
}
