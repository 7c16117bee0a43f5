package cmd

import (
	"fmt"
	"os"
	"os/exec"

	"milac/report"
)

// irCompiler and cCompiler name the external tools this driver shells out
// to: an IR-to-assembly compiler consuming the textual LLVM IR the lowering
// engine emits, and a C compiler that assembles and links that output
// against the fixed C runtime. Both are overridable so the toolchain can be
// swapped without touching the compiler itself.
var (
	irCompiler = envOr("MILAC_LLC", "llc")
	cCompiler  = envOr("MILAC_CC", "cc")
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// build writes ir to disk and drives it through the external toolchain to
// produce the linked executable, cleaning up every intermediate file it
// creates along the way regardless of outcome.
func (c *Compiler) build(ir string) bool {
	irPath := "output.ir"
	asmPath := "output.s"
	cPath := "io.c"
	outPath := c.outputName + ".out"

	defer removeAll(irPath, asmPath, cPath)

	if err := os.WriteFile(irPath, []byte(ir), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to write %s: %s\n", irPath, err)
		return false
	}

	if c.verbose {
		report.BeginPhase("assembling")
	}
	err := runIRCompiler(irPath, asmPath)
	if c.verbose {
		report.EndPhase(err == nil)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return false
	}

	if err := os.WriteFile(cPath, []byte(cRuntimeSource), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to write %s: %s\n", cPath, err)
		return false
	}

	if c.verbose {
		report.BeginPhase("linking")
	}
	err = runCCompiler(asmPath, cPath, outPath)
	if c.verbose {
		report.EndPhase(err == nil)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return false
	}

	return true
}

// runIRCompiler invokes the external IR-to-assembly compiler on irPath,
// producing asmPath.
func runIRCompiler(irPath, asmPath string) error {
	cmd := exec.Command(irCompiler, irPath, "-o", asmPath)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("IR compiler failed: %w\n%s", err, out)
	}
	return nil
}

// runCCompiler invokes the external C compiler to assemble and link asmPath
// together with the runtime source at cPath into outPath.
func runCCompiler(asmPath, cPath, outPath string) error {
	cmd := exec.Command(cCompiler, asmPath, cPath, "-o", outPath)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("C compiler failed: %w\n%s", err, out)
	}
	return nil
}

// removeAll deletes every intermediate file produced during a build: a
// finished build leaves only the source file and the final executable.
func removeAll(paths ...string) {
	for _, p := range paths {
		os.Remove(p)
	}
}
