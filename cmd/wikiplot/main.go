// Package main provides the entry point for the wikiplot CLI.
package main

import (
	"wikiplot/internal/cli"
)

func main() {
	cli.Execute()
}
