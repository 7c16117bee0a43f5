package report

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pterm/pterm"
)

var (
	errorStyle = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	errorFG    = pterm.FgRed
	infoFG     = pterm.FgLightGreen
)

// PhaseLabel is the stderr prefix identifying which pipeline stage raised an
// error, per the CLI contract in the language's external interface.
func PhaseLabel(err error) string {
	switch err.(type) {
	case *LexerError:
		return "Lexer error"
	case *ParseError:
		return "Parser error"
	case *CodeGenError:
		return "Code generation error"
	default:
		return "error"
	}
}

// DisplayError prints a one-line, phase-prefixed diagnostic to stderr and, if
// the source text is available, the offending line with a caret underline.
func DisplayError(source, path string, err error) {
	label := PhaseLabel(err)

	fmt.Fprint(os.Stderr, errorStyle.Sprint(label+":"))
	fmt.Fprintln(os.Stderr, errorFG.Sprint(" "+err.Error()))

	if pos, ok := positionOf(err); ok && source != "" {
		displaySourceLine(source, pos)
	}
}

// positionOf extracts the offending Position from one of the three error
// kinds, if it carries one.
func positionOf(err error) (Position, bool) {
	switch e := err.(type) {
	case *LexerError:
		return e.Position, true
	case *ParseError:
		return e.Position, true
	case *CodeGenError:
		return e.Position, true
	}
	return Position{}, false
}

// displaySourceLine prints the single source line containing pos with a caret
// underneath the offending column.
func displaySourceLine(source string, pos Position) {
	sc := bufio.NewScanner(strings.NewReader(source))
	lineNo := 0
	var line string
	for sc.Scan() {
		lineNo++
		if lineNo == pos.Line {
			line = sc.Text()
			break
		}
	}

	if lineNo != pos.Line {
		return
	}

	lineNumStr := strconv.Itoa(pos.Line)
	fmt.Fprintf(os.Stderr, "%s | %s\n", lineNumStr, line)
	fmt.Fprint(os.Stderr, strings.Repeat(" ", len(lineNumStr)), " | ")
	if pos.Col-1 > 0 {
		fmt.Fprint(os.Stderr, strings.Repeat(" ", pos.Col-1))
	}
	fmt.Fprintln(os.Stderr, errorFG.Sprint("^"))
}

// -----------------------------------------------------------------------------
// Verbose-mode phase tracing (-v): a colored spinner per pipeline stage plus a
// structured AST dump, mirroring the way the compiler narrates its own work.

var (
	phaseSpinner   *pterm.SpinnerPrinter
	currentPhase   string
	phaseStartTime time.Time
)

// BeginPhase announces the start of a pipeline stage (parsing, lowering,
// assembling, linking) when verbose tracing is enabled.
func BeginPhase(phase string) {
	currentPhase = phase
	phaseSpinner = pterm.DefaultSpinner.WithStyle(pterm.NewStyle(infoFG))
	phaseSpinner.Start(phase + "...")
	phaseStartTime = time.Now()
}

// EndPhase closes out the current stage, reporting its wall-clock duration.
func EndPhase(success bool) {
	if phaseSpinner == nil {
		return
	}

	elapsed := time.Since(phaseStartTime).Seconds()
	if success {
		phaseSpinner.Success(fmt.Sprintf("%s (%.3fs)", currentPhase, elapsed))
	} else {
		phaseSpinner.Fail(currentPhase)
	}
	phaseSpinner = nil
}
