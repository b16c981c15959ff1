// Package main is the entry point for the prior CLI.
package main

import "prior.dev/pkg/prior/cmd"

func main() {
	cmd.Execute()
}
