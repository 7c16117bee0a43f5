// Command milac compiles a single Mila source file into a linked
// executable, via an external LLVM IR-to-assembly compiler and C compiler.
package main

import (
	"os"

	"milac/cmd"
)

func main() {
	os.Exit(cmd.RunCompiler())
}
