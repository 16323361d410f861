// Command aslc compiles ASL source into three-address code.
//
// Grounded on _examples/hhramberg-go-vslc/src/main.go's top-level run
// function, reduced from VSL's multi-backend pipeline to this compiler's
// single TAC target, with the flag surface reshaped onto
// github.com/spf13/cobra the way
// _examples/CWBudde-go-dws/cmd/dwscript/main.go wires its own root command.
package main

import (
	"fmt"
	"os"

	"aslc/cmd/aslc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
