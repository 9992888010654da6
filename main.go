// Package main is the entry point for the cswin CLI tool, which extracts
// per-round economy and armament features from CS2 demo files.
package main

import "github.com/TaiZo1/cs2-win-prediction/cmd"

func main() {
	cmd.Execute()
}
