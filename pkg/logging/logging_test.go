package logging

import (
	"bytes"
	"context"
	"testing"

	"github.com/fatih/color"
	qt "github.com/frankban/quicktest"
)

func TestLoggerLevels(t *testing.T) {
	color.NoColor = true
	for _, tc := range []struct {
		name    string
		quiet   bool
		verbose bool
		expect  string
	}{
		{"default", false, false, "tag  info\n"},
		{"quiet", true, false, ""},
		{"verbose", false, true, "tag  info\ntag  debug\n"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			var out, errOut bytes.Buffer
			l := NewLogger(&out, &errOut, false, tc.quiet, tc.verbose)
			l.Info("tag", "info")
			l.Debug("tag", "debug")
			l.Out("data %d", 1)
			qt.Check(t, errOut.String(), qt.Equals, tc.expect)
			qt.Check(t, out.String(), qt.Equals, "data 1\n")
		})
	}
}

func TestLoggerMultiline(t *testing.T) {
	color.NoColor = true
	var out, errOut bytes.Buffer
	l := NewLogger(&out, &errOut, false, false, false)
	l.Info("load", "first\nsecond")
	qt.Assert(t, errOut.String(), qt.Equals, "load  first\nload  second\n")
}

func TestCtx(t *testing.T) {
	var out, errOut bytes.Buffer
	l := NewLogger(&out, &errOut, true, false, false)
	ctx := l.WithContext(context.Background())
	qt.Assert(t, Ctx(ctx), qt.Equals, l)
	qt.Assert(t, Ctx(ctx).JSON(), qt.IsTrue)
	qt.Assert(t, Ctx(context.Background()), qt.Not(qt.IsNil))
}
