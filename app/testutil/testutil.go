package testutil

import (
	"bytes"
	"errors"
	"io"
	"os"
	"regexp"
	"strings"
	"testing"

	"github.com/fatih/color"
	qt "github.com/frankban/quicktest"
	"github.com/serum-errors/go-serum"
	"github.com/warpfork/go-testmark"
	"github.com/warpfork/go-testmark/testexec"

	cpapp "github.com/arcator/cmdperms/app"
)

// TestFileContainingTestmarkexec runs every top level dir of a testmark file
// as a testexec case against the cmdperms app.
// Each case runs in its own temp dir, populated from its "fs/" hunks.
func TestFileContainingTestmarkexec(t *testing.T, fileName string, workDir *string) {
	t.Logf("loading test file: %q", fileName)
	doc, err := testmark.ReadFile(fileName)
	if err != nil {
		t.Fatalf("fixture file parse failed?!: %s", err)
	}

	if workDir != nil {
		pwd, err := os.Getwd()
		qt.Assert(t, err, qt.IsNil)
		err = os.Chdir(*workDir)
		qt.Assert(t, err, qt.IsNil)
		t.Cleanup(func() { os.Chdir(pwd) })
	}

	doc.BuildDirIndex()
	patches := testmark.PatchAccumulator{}
	for _, dir := range doc.DirEnt.ChildrenList {
		dir := dir
		t.Run(dir.Name, func(t *testing.T) {
			test := testexec.Tester{
				ExecFn:   buildExecFn(t),
				Patches:  &patches,
				AssertFn: assertFn,
			}
			test.Test(t, dir)
		})
	}
	if *testmark.Regen {
		patches.WriteFileWithPatches(doc, fileName)
	}
}

var reTmpPath = regexp.MustCompile(`/tmp/testmarkexec[0-9]+`)

// cleanOutput replaces values that differ between runs, such as temp dir paths.
func cleanOutput(str string) string {
	str = reTmpPath.ReplaceAllString(str, `$$TMP`)
	return strings.TrimSpace(str)
}

// Warning!  Impure function!  Cannot safely be used in parallel!
// This mutates the CLI app object to wire the IO streams.
// Color output is disabled so that log lines compare as plain text.
func buildExecFn(t *testing.T) func([]string, io.Reader, io.Writer, io.Writer) (int, error) {
	color.NoColor = true
	return func(args []string, stdin io.Reader, stdout, stderr io.Writer) (int, error) {
		bufout, buferr := &bytes.Buffer{}, &bytes.Buffer{}
		var testout io.Writer = bufout
		if stdout != nil {
			testout = io.MultiWriter(stdout, bufout)
		}
		var testerr io.Writer = buferr
		if stderr != nil {
			testerr = io.MultiWriter(stderr, buferr)
		}

		wd, err := os.Getwd()
		if err != nil {
			panic("failed to find working directory")
		}
		t.Logf("Working Directory: %q", wd)

		cpapp.App.Reader = stdin
		cpapp.App.Writer = testout
		cpapp.App.ErrWriter = testerr
		err = cpapp.App.Run(args)

		exitCode := 0
		if err != nil {
			exitCode = 1
		}

		t.Logf("Args: %v", args)
		for err != nil {
			t.Logf("Code: %s", serum.Code(err))
			t.Logf("Message: %s", serum.Message(err))
			t.Logf("Details: %v", serum.Details(err))
			err = errors.Unwrap(err)
			if err != nil {
				t.Logf("caused by:")
			}
		}
		t.Logf("⌄⌄⌄ stdout ⌄⌄⌄\n%s", bufout.String())
		t.Logf("⌄⌄⌄ stderr ⌄⌄⌄\n%s", buferr.String())
		return exitCode, nil
	}
}

func assertFn(t *testing.T, actual, expect string) {
	actual = cleanOutput(actual)
	expect = cleanOutput(expect)
	qt.Assert(t, actual, qt.Equals, expect)
}
