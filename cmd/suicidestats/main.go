package main

import "suicidestats/internal/cli"

func main() {
	cli.Execute()
}
