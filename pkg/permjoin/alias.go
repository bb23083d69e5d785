package permjoin

import (
	"strings"

	"github.com/arcator/cmdperms/cpapi"
)

// AliasIndex maps a command name to its aliases, in declaration order.
// Only commands with a non-empty alias field have an entry.
type AliasIndex map[string][]string

// BuildAliasIndex indexes the aliases of every command that declares some.
//
// The alias field is split on commas and each piece is trimmed of surrounding
// whitespace; pieces are not deduplicated here.
// If a command name appears more than once, the last record wins.
func BuildAliasIndex(commands []cpapi.CommandRecord) AliasIndex {
	idx := make(AliasIndex, len(commands))
	for _, cmd := range commands {
		if !cpapi.Present(cmd.Aliases) {
			continue
		}
		pieces := strings.Split(*cmd.Aliases, ",")
		aliases := make([]string, len(pieces))
		for i, p := range pieces {
			aliases[i] = strings.TrimSpace(p)
		}
		idx[cmd.Name] = aliases
	}
	return idx
}

// Has reports whether command has an alias entry.
func (idx AliasIndex) Has(command string) bool {
	_, ok := idx[command]
	return ok
}
