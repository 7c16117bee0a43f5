package cmd

import (
	"fmt"
	"os"

	"milac/lower"
	"milac/report"
	"milac/syntax"
)

// readSource loads the compiler's source file, reporting a plain I/O error
// -- not one of the three phase errors -- on failure.
func (c *Compiler) readSource() (string, error) {
	data, err := os.ReadFile(c.sourcePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		return "", err
	}
	return string(data), nil
}

// frontend runs the lex/parse/lower phases over source, tracing each one
// when verbose mode is on and dumping the parsed AST before lowering
// begins. It returns the emitted textual IR and whether every phase
// succeeded; a failing phase has already displayed its diagnostic.
func (c *Compiler) frontend(source string) (string, bool) {
	if c.verbose {
		report.BeginPhase("parsing")
	}
	prog, err := syntax.Parse(source)
	if c.verbose {
		report.EndPhase(err == nil)
	}
	if err != nil {
		report.DisplayError(source, c.sourcePath, err)
		return "", false
	}

	if c.verbose {
		dumpProgram(prog)
	}

	if c.verbose {
		report.BeginPhase("lowering")
	}
	ir, err := lower.Lower(prog)
	if c.verbose {
		report.EndPhase(err == nil)
	}
	if err != nil {
		report.DisplayError(source, c.sourcePath, err)
		return "", false
	}

	return ir, true
}
