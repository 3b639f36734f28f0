package main

import "github.com/mcoot/roguebingo/internal/cli"

func main() {
	cli.Execute()
}
