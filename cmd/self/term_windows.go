// +build windows

package main

// isTerminal always reports false on Windows: this REPL only special-cases
// interactive terminals to suppress the prompt when piped, and a wrong
// answer here costs nothing worse than a printed prompt in a pipeline.
func isTerminal(fd int) bool {
	return false
}
