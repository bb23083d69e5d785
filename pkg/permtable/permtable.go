// Package permtable reads a generated permission table back, and answers
// the question the server plugin asks of it: which node guards the command
// in this chat line?
package permtable

import (
	"errors"
	"io/fs"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/arcator/cmdperms/cpapi"
)

// Table is a parsed permission table: command or alias name -> node.
type Table struct {
	nodes map[string]string
}

// Parse decodes a table.  Every value must be a string.
//
// Errors:
//
//   - cmdperms-error-table-invalid -- when data is not TOML, or holds anything but top level string values.
func Parse(filename string, data []byte) (*Table, error) {
	nodes := map[string]string{}
	if err := toml.Unmarshal(data, &nodes); err != nil {
		return nil, cpapi.ErrorTableInvalid(filename, err)
	}
	return &Table{nodes: nodes}, nil
}

// Load reads and parses a table from fsys.
//
// Errors:
//
//   - cmdperms-error-missing -- when the file does not exist.
//   - cmdperms-error-io -- for other errors reading from fsys.
//   - cmdperms-error-table-invalid -- when the file is not a valid table.
func Load(fsys fs.FS, filename string) (*Table, error) {
	filename = strings.TrimPrefix(filename, "/")
	data, err := fs.ReadFile(fsys, filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, cpapi.ErrorFileMissing(filename)
		}
		return nil, cpapi.ErrorIo("reading permission table", filename, err)
	}
	return Parse(filename, data)
}

func (t *Table) Len() int {
	return len(t.nodes)
}

// Names returns every name in the table, sorted.
func (t *Table) Names() []string {
	names := make([]string, 0, len(t.nodes))
	for name := range t.nodes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Node returns the node for an exact name.
func (t *Table) Node(name string) (string, bool) {
	node, ok := t.nodes[name]
	return node, ok
}

// Lookup resolves a chat line such as "/Ban Steve 1d" to the node guarding its command.
// The returned command is the normalized name that was looked up.
//
// Errors:
//
//   - cmdperms-error-unknown-command -- when the table has no entry for the command.
func (t *Table) Lookup(message string) (command string, node string, err error) {
	command = BaseCommand(message)
	node, ok := t.nodes[command]
	if !ok {
		return command, "", cpapi.ErrorUnknownCommand(command)
	}
	return command, node, nil
}

// BaseCommand extracts the command name from a chat line:
// one leading slash is dropped, everything from the first space on is dropped,
// and the remainder is lower-cased.
//
// The server plugin drops the first character whatever it is. Chat commands
// always begin with a slash, so the two agree on everything the plugin sees;
// a bare "ban" is accepted here and means "ban".
func BaseCommand(message string) string {
	message = strings.TrimPrefix(message, "/")
	if i := strings.IndexByte(message, ' '); i >= 0 {
		message = message[:i]
	}
	return cases.Lower(language.Und).String(message)
}
