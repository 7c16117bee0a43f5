package cmd

import (
	"fmt"
	"os"
	"strings"
)

const usage = `Usage: milac [flags|options] <source file>

Flags:
------
-h, --help      Displays usage information (ie. this text).
-v, --verbose   Traces each pipeline phase and dumps the parsed AST.

Options:
--------
-o, --outpath   Sets the base name of the produced executable. The linked
                output is <name>.out. Defaults to "a" if unspecified.
`

// Set of argument names that correspond to options (as opposed to flags).
var options = map[string]struct{}{
	"o":        {},
	"-outpath": {},
}

// printUsage prints the usage message and exits the compiler with the given
// exit code.
func printUsage(exitCode int) {
	fmt.Print(usage)
	os.Exit(exitCode)
}

// argumentError displays an argument error and exits the program.
func argumentError(message string, args ...interface{}) {
	fmt.Fprint(os.Stderr, "argument error: ", fmt.Sprintf(message, args...), "\n\n")
	printUsage(1)
}

// argParser is a command-line argument parser: a cursor over os.Args that
// splits each argument into a (name, value) pair, leaving name empty for a
// positional argument.
type argParser struct {
	args []string
	ndx  int
}

// nextArg parses the next command-line argument, if one exists. The first
// return value is the argument's name, empty for a positional argument. The
// second is its value, empty for a bare flag. The third reports whether
// there was an argument left to parse.
func (ap *argParser) nextArg() (string, string, bool) {
	if ap.ndx >= len(ap.args) {
		return "", "", false
	}
	arg := ap.args[ap.ndx]
	ap.ndx++

	if !strings.HasPrefix(arg, "-") {
		return "", arg, true
	}

	name := arg[1:]
	if _, ok := options[name]; ok {
		if ap.ndx < len(ap.args) && !strings.HasPrefix(ap.args[ap.ndx], "-") {
			value := ap.args[ap.ndx]
			ap.ndx++
			return name, value, true
		}
		argumentError("option %s requires an argument", name)
	}
	return name, "", true
}

// useArg applies a single parsed argument to c, exiting the program if the
// argument is invalid.
func useArg(c *Compiler, name, value string) {
	switch name {
	case "h", "-help":
		printUsage(0)
	case "v", "-verbose":
		c.verbose = true
	case "o", "-outpath":
		c.outputName = value
	case "":
		if c.sourcePath != "" {
			argumentError("source path specified multiple times")
		}
		c.sourcePath = value
	default:
		argumentError("unknown flag: %s", name)
	}
}

// NewCompilerFromArgs builds a Compiler from os.Args, applying defaults for
// any option the user left unspecified. It exits the process directly on
// any argument error or on --help.
func NewCompilerFromArgs() *Compiler {
	c := &Compiler{outputName: "a"}

	ap := argParser{args: os.Args[1:]}
	for {
		name, value, ok := ap.nextArg()
		if !ok {
			break
		}
		useArg(c, name, value)
	}

	if c.sourcePath == "" {
		argumentError("a source file must be specified")
	}

	return c
}
