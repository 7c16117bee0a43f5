package cmd

import "testing"

func TestArgParserPositionalAndFlags(t *testing.T) {
	ap := argParser{args: []string{"-v", "prog.mila"}}

	name, value, ok := ap.nextArg()
	if !ok || name != "v" || value != "" {
		t.Fatalf("first arg = (%q, %q, %v), want (v, \"\", true)", name, value, ok)
	}

	name, value, ok = ap.nextArg()
	if !ok || name != "" || value != "prog.mila" {
		t.Fatalf("second arg = (%q, %q, %v), want (\"\", prog.mila, true)", name, value, ok)
	}

	if _, _, ok = ap.nextArg(); ok {
		t.Fatal("expected no more arguments")
	}
}

func TestArgParserOptionConsumesValue(t *testing.T) {
	ap := argParser{args: []string{"-o", "myoutput", "src.mila"}}

	name, value, ok := ap.nextArg()
	if !ok || name != "o" || value != "myoutput" {
		t.Fatalf("option arg = (%q, %q, %v), want (o, myoutput, true)", name, value, ok)
	}

	name, value, ok = ap.nextArg()
	if !ok || name != "" || value != "src.mila" {
		t.Fatalf("positional arg = (%q, %q, %v), want (\"\", src.mila, true)", name, value, ok)
	}
}

func TestUseArgSetsCompilerFields(t *testing.T) {
	c := &Compiler{outputName: "a"}

	useArg(c, "v", "")
	if !c.verbose {
		t.Error("-v should set verbose")
	}

	useArg(c, "o", "prog")
	if c.outputName != "prog" {
		t.Errorf("outputName = %q, want prog", c.outputName)
	}

	useArg(c, "", "main.mila")
	if c.sourcePath != "main.mila" {
		t.Errorf("sourcePath = %q, want main.mila", c.sourcePath)
	}
}
