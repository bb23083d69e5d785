package generatecli

import (
	"testing"

	qt "github.com/frankban/quicktest"

	appbase "github.com/arcator/cmdperms/app/base"
	"github.com/arcator/cmdperms/cpapi"
)

func TestEntriesNode(t *testing.T) {
	n, err := entriesNode([]cpapi.Entry{
		{Name: "b", Node: "mod.ban"},
		{Name: "ban", Node: "mod.ban"},
	})
	qt.Assert(t, err, qt.IsNil)
	serial, err := appbase.EncodeResult(n)
	qt.Assert(t, err, qt.IsNil)
	qt.Check(t, serial, qt.JSONEquals, map[string]interface{}{
		"entries": []interface{}{
			map[string]interface{}{"name": "b", "node": "mod.ban"},
			map[string]interface{}{"name": "ban", "node": "mod.ban"},
		},
	})
}

func TestEntriesNodeEmpty(t *testing.T) {
	n, err := entriesNode(nil)
	qt.Assert(t, err, qt.IsNil)
	serial, err := appbase.EncodeResult(n)
	qt.Assert(t, err, qt.IsNil)
	qt.Check(t, serial, qt.JSONEquals, map[string]interface{}{
		"entries": []interface{}{},
	})
}
