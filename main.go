package main

import (
	"jarvis/cmd" // CLI commands and execution logic
)

// main is the program entry point.
// It delegates to cmd.Execute() which handles command line argument parsing and execution.
//
// jarvis keeps a registry of the programs and reference databases installed on
// a server in a single JSON file:
//   - `list` prints every entry, or the entries of some categories
//   - `show` prints one entry in detail; the name may be abbreviated or misspelled
//   - `edit` appends, edits or removes entries and writes the file back atomically
//   - `check` verifies that the commands recorded for an entry are on PATH
//
// Errors from any command are logged once and the process exits with status 1.
func main() {
	cmd.Execute()
}
