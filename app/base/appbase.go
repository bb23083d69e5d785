package appbase

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/ipld/go-ipld-prime"
	ipldjson "github.com/ipld/go-ipld-prime/codec/json"
	"github.com/ipld/go-ipld-prime/datamodel"
	"github.com/urfave/cli/v2"
)

const VERSION = "v0.2.0"

// MetadataResult is the App.Metadata key a command sets to a datamodel.Node
// when it wants that node printed as its JSON result.
const MetadataResult = "result"

var App = &cli.App{
	Name:    "cmdperms",
	Version: VERSION,
	Usage:   "generate the command to permission-node table for StaffWarnV",

	Reader:    closedReader{}, // Replace with os.Stdin in real application; or other wiring, in tests.
	Writer:    panicWriter{},  // Replace with os.Stdout in real application; or other wiring, in tests.
	ErrWriter: panicWriter{},  // Replace with os.Stderr in real application; or other wiring, in tests.

	Metadata: map[string]interface{}{},

	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			EnvVars: []string{"CMDPERMS_DEBUG"},
		},
		&cli.BoolFlag{
			Name: "quiet",
		},
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Enable JSON API output",
		},
		&cli.StringFlag{
			Name:      "trace.file",
			Usage:     "Enable tracing and emit output to file",
			TakesFile: true,
		},
		&cli.BoolFlag{
			Name:  "trace.http.enable",
			Usage: "Enable remote tracing over http",
		},
		&cli.BoolFlag{
			Name:  "trace.http.insecure",
			Usage: "Allows insecure http",
		},
		&cli.StringFlag{
			Name:  "trace.http.endpoint",
			Usage: "Sets an endpoint for remote open-telemetry tracing collection",
		},
	},

	// The commands slice is updated by each package that contains commands.
	// Import the parent of this package to get that all done for you!
	Commands: []*cli.Command{},

	ExitErrHandler: func(c *cli.Context, err error) {
		if err == nil {
			return
		}
		if c.Bool("json") {
			bytes, err := json.Marshal(err)
			if err != nil {
				panic("error marshaling json")
			}
			fmt.Fprintf(c.App.ErrWriter, "%s\n", string(bytes))
		} else {
			fmt.Fprintf(c.App.ErrWriter, "error: %s\n", err)
		}
	},

	After: printResult,
}

// printResult is called after any command completes.
// If the command stored a datamodel.Node under MetadataResult,
// it is printed to stdout as JSON and then cleared.
func printResult(c *cli.Context) error {
	result, ok := c.App.Metadata[MetadataResult]
	if !ok || result == nil {
		return nil
	}
	delete(c.App.Metadata, MetadataResult)
	n, ok := result.(datamodel.Node)
	if !ok {
		panic("invalid result value - not a datamodel.Node")
	}

	serial, err := EncodeResult(n)
	if err != nil {
		panic("failed to serialize output")
	}
	fmt.Fprintf(c.App.Writer, "%s\n", serial)
	return nil
}

// EncodeResult serializes a command result the way it is printed for --json.
// Map keys keep the order they were assembled in.
func EncodeResult(n datamodel.Node) ([]byte, error) {
	return ipld.Encode(n, ipldjson.Encode)
}

// Aaaand the other modifications to `urfave/cli` that are unfortunately only possible by manipulating globals:
func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:               "version", // And no short aliases.  "-v" is for "verbose"!
		Usage:              "print the version",
		DisableDefaultText: true,
	}
}

type closedReader struct{}

// Read is a dummy method that always returns EOF.
func (c closedReader) Read(p []byte) (int, error) {
	return 0, io.EOF
}

type panicWriter struct{}

// Write is a dummy method that always panics.  You're supposed to replace panicWriter values before use.
func (p panicWriter) Write(data []byte) (int, error) {
	panic("replace the Writer and ErrWriter on the App value in packages that use it!")
}
