package logging

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

type ctxKey struct{}

// Logger writes data to out and human-facing progress to err.
// Data lines are never decorated; log lines are prefixed with a colored tag.
type Logger struct {
	out     io.Writer
	err     io.Writer
	json    bool
	quiet   bool
	verbose bool
}

func DefaultLogger() *Logger {
	return &Logger{
		out: os.Stdout,
		err: os.Stderr,
	}
}

func NewLogger(out, err io.Writer, json, quiet, verbose bool) *Logger {
	return &Logger{
		out:     out,
		err:     err,
		json:    json,
		quiet:   quiet,
		verbose: verbose,
	}
}

// WithContext returns a copy of ctx carrying this logger.
func (l *Logger) WithContext(ctx context.Context) context.Context {
	if existing, ok := ctx.Value(ctxKey{}).(*Logger); ok && existing == l {
		return ctx
	}
	return context.WithValue(ctx, ctxKey{}, l)
}

// Ctx returns the logger stored in ctx, or DefaultLogger if there is none.
func Ctx(ctx context.Context) *Logger {
	if l, ok := ctx.Value(ctxKey{}).(*Logger); ok {
		return l
	}
	return DefaultLogger()
}

// JSON reports whether the caller asked for machine readable output.
func (l *Logger) JSON() bool {
	return l.json
}

func (l *Logger) Verbose() bool {
	return l.verbose
}

func (l *Logger) Out(f string, args ...interface{}) {
	fmt.Fprintf(l.out, f+"\n", args...)
}

func (l *Logger) OutRaw(s string) {
	fmt.Fprintf(l.out, "%s", s)
}

// OutWriter exposes the data stream for callers that encode directly to it.
func (l *Logger) OutWriter() io.Writer {
	return l.out
}

func (l *Logger) Info(tag string, f string, args ...interface{}) {
	if l.quiet {
		return
	}
	print(l.err, color.New(color.FgHiGreen), tag, f, args...)
}

func (l *Logger) Debug(tag string, f string, args ...interface{}) {
	if l.verbose {
		print(l.err, color.New(color.FgGreen), tag, f, args...)
	}
}

func print(w io.Writer, tagColor *color.Color, tag, f string, args ...interface{}) {
	str := fmt.Sprintf(f, args...)
	for _, line := range strings.Split(str, "\n") {
		fmt.Fprintf(w, "%s  %s\n",
			tagColor.Sprint(tag),
			color.WhiteString(line))
	}
}
