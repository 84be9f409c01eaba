// cmd/lunch/main.go
//
// This is the entry point for the lunch CLI.
// Running `lunch` with no subcommand opens the roulette TUI in the current
// directory; `draw`, `where` and `forget` work without a terminal UI.

package main

func main() {
	Execute()
}
