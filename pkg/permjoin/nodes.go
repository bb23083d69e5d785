package permjoin

import (
	"sort"
	"unicode/utf8"

	"github.com/arcator/cmdperms/cpapi"
)

// NodeMap maps a command name to the permission node that guards it.
// Every key is also a key of the AliasIndex it was built against.
type NodeMap map[string]string

// BuildNodeMap folds the permission records into a NodeMap.
//
// Records with an absent or empty command or node are skipped,
// as are records for commands that have no aliases.
// When several records name the same command, the node with the most
// characters wins; on a tie the first one seen is kept.
//
// The returned map is freshly allocated and not shared with anything else.
func BuildNodeMap(permissions []cpapi.PermissionRecord, aliases AliasIndex) NodeMap {
	acc := make(NodeMap)
	for _, rec := range permissions {
		acc = preferLongest(acc, aliases, rec)
	}
	return acc
}

// preferLongest is the fold step of BuildNodeMap.
func preferLongest(acc NodeMap, aliases AliasIndex, rec cpapi.PermissionRecord) NodeMap {
	if !cpapi.Present(rec.Command) || !cpapi.Present(rec.Node) {
		return acc
	}
	cmd, node := *rec.Command, *rec.Node
	if !aliases.Has(cmd) {
		return acc
	}
	existing, ok := acc[cmd]
	if !ok || utf8.RuneCountInString(existing) < utf8.RuneCountInString(node) {
		acc[cmd] = node
	}
	return acc
}

// Commands returns the mapped command names in ascending order.
func (m NodeMap) Commands() []string {
	cmds := make([]string, 0, len(m))
	for cmd := range m {
		cmds = append(cmds, cmd)
	}
	sort.Strings(cmds)
	return cmds
}
