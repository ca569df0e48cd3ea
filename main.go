// Package main is the entry point for the cricstats CLI tool, which reads
// ball-by-ball cricket match files and computes player batting/bowling metrics.
package main

import "github.com/pable/go-cricket-metrics/cmd"

func main() {
	cmd.Execute()
}
