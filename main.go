// Package main is the entry point for the slpresults CLI tool, which resolves
// the winners of decoded Slippi replays and keeps a local results database.
package main

import "github.com/pable/slp-results/cmd"

func main() {
	cmd.Execute()
}
