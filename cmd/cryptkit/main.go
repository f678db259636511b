/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: main.go
Description: Entry point of the cryptkit command-line tool.
*/

package main

import (
	"fmt"
	"os"

	"github.com/kleascm/cryptkit/cmd/cryptkit/commands"
)

func main() {
	// Execute root command
	if err := commands.NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
