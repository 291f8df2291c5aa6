package main

import (
	"fmt"
	"os"
)

// main is the outer command loop: argument parsing, opening the
// database, and running each remaining argument as one command. It
// only wires the external collaborators together and owns none of the
// decoding or execution logic itself.
func main() {
	if len(os.Args) < 3 {
		fmt.Fprintln(os.Stderr, "Usage: sqlitekit <database file> <command> [command...]")
		os.Exit(1)
	}

	engine, err := OpenEngine(os.Args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer engine.Close()

	for _, arg := range os.Args[2:] {
		cmd, err := ParseCommand(arg)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		out, err := engine.Run(cmd)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Print(out)
	}
}
