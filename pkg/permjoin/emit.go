package permjoin

import (
	"context"
	"fmt"
	"io"
	"sort"

	"go.opentelemetry.io/otel/attribute"

	"github.com/arcator/cmdperms/cpapi"
	"github.com/arcator/cmdperms/pkg/tracing"
)

// Entries returns every line Emit would write, in the same order.
func Entries(nodes NodeMap, aliases AliasIndex) []cpapi.Entry {
	var result []cpapi.Entry
	_ = walk(nodes, aliases, func(e cpapi.Entry) error {
		result = append(result, e)
		return nil
	})
	return result
}

// Emit streams the permission table to w, one FormatLine per entry.
// Commands are visited in ascending order; within a command, the command
// itself and its aliases are deduplicated and written in ascending order,
// all carrying the command's node.
//
// Output is not buffered: if writing fails part way through,
// the lines already written stay written.
//
// Errors:
//
//   - cmdperms-error-io -- when writing to w fails.
func Emit(ctx context.Context, w io.Writer, nodes NodeMap, aliases AliasIndex) (n int, err error) {
	_, span := tracing.StartFn(ctx, "Emit")
	defer func() { tracing.EndWithStatus(span, err) }()

	err = walk(nodes, aliases, func(e cpapi.Entry) error {
		if _, err := io.WriteString(w, FormatLine(e)); err != nil {
			return cpapi.ErrorIo("writing permission table", "", err)
		}
		n++
		return nil
	})
	span.SetAttributes(attribute.Int(tracing.AttrKeyCmdpermsEntryCount, n))
	return n, err
}

// FormatLine renders one entry as a table line, including the trailing newline.
// The node is interpolated verbatim; no escaping is applied.
func FormatLine(e cpapi.Entry) string {
	return fmt.Sprintf("%s = \"%s\"\n", e.Name, e.Node)
}

func walk(nodes NodeMap, aliases AliasIndex, fn func(cpapi.Entry) error) error {
	for _, cmd := range nodes.Commands() {
		node := nodes[cmd]
		for _, name := range namesFor(cmd, aliases[cmd]) {
			if err := fn(cpapi.Entry{Name: name, Node: node}); err != nil {
				return err
			}
		}
	}
	return nil
}

// namesFor returns the sorted set of cmd and its aliases.
func namesFor(cmd string, aliases []string) []string {
	seen := make(map[string]struct{}, len(aliases)+1)
	names := make([]string, 0, len(aliases)+1)
	for _, name := range append([]string{cmd}, aliases...) {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
