// Package cmd is the top-level "driver" package for the milac compiler: it
// parses command-line arguments, runs the lex/parse/lower pipeline, and
// shells out to an external IR-to-assembly compiler and a C compiler to
// produce a linked executable.
package cmd

// Compiler represents the configuration and state of a single compilation
// run, built from command-line arguments.
type Compiler struct {
	// The path to the source file to compile.
	sourcePath string

	// The base name of the produced executable; the linked output is
	// outputName + ".out".
	outputName string

	// Whether to trace each pipeline phase and dump the parsed AST to
	// stdout.
	verbose bool
}

// RunCompiler is the main entry point for the milac compiler. It should be
// called directly from main.
func RunCompiler() int {
	c := NewCompilerFromArgs()

	source, err := c.readSource()
	if err != nil {
		return 1
	}

	ir, ok := c.frontend(source)
	if !ok {
		return 1
	}

	if !c.build(ir) {
		return 1
	}

	return 0
}
