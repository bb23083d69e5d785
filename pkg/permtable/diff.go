package permtable

import (
	"sort"

	"github.com/arcator/cmdperms/cpapi"
)

// Diff lists the names on which a table and a freshly joined set of entries disagree.
// Each slice is sorted.
type Diff struct {
	Missing []string // expected but absent from the table
	Changed []string // present in both, with a different node
	Extra   []string // in the table but not expected
}

func (d Diff) Empty() bool {
	return len(d.Missing) == 0 && len(d.Changed) == 0 && len(d.Extra) == 0
}

// Compare checks the table against the entries it should hold.
// Names are compared exactly; no case folding is applied.
func (t *Table) Compare(expected []cpapi.Entry) Diff {
	var d Diff
	seen := make(map[string]struct{}, len(expected))
	for _, e := range expected {
		if _, dup := seen[e.Name]; dup {
			continue
		}
		seen[e.Name] = struct{}{}
		node, ok := t.nodes[e.Name]
		switch {
		case !ok:
			d.Missing = append(d.Missing, e.Name)
		case node != e.Node:
			d.Changed = append(d.Changed, e.Name)
		}
	}
	for name := range t.nodes {
		if _, ok := seen[name]; !ok {
			d.Extra = append(d.Extra, name)
		}
	}
	sort.Strings(d.Missing)
	sort.Strings(d.Changed)
	sort.Strings(d.Extra)
	return d
}
