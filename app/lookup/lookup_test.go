package lookupcli

import (
	"strings"
	"testing"

	qt "github.com/frankban/quicktest"

	appbase "github.com/arcator/cmdperms/app/base"
	"github.com/arcator/cmdperms/cpapi"
)

func TestMatchesNode(t *testing.T) {
	n, err := matchesNode([]match{
		{message: "/Ban Steve", entry: cpapi.Entry{Name: "ban", Node: "mod.ban"}},
		{message: "/m", entry: cpapi.Entry{Name: "m", Node: "mod.mute"}},
	})
	qt.Assert(t, err, qt.IsNil)
	serial, err := appbase.EncodeResult(n)
	qt.Assert(t, err, qt.IsNil)
	qt.Check(t, serial, qt.JSONEquals, map[string]interface{}{
		"results": []interface{}{
			map[string]interface{}{"message": "/Ban Steve", "command": "ban", "node": "mod.ban"},
			map[string]interface{}{"message": "/m", "command": "m", "node": "mod.mute"},
		},
	})

	// keys come out in the order they are assembled: message, command, node
	out := string(serial)
	iMessage := strings.Index(out, `"message"`)
	iCommand := strings.Index(out, `"command"`)
	iNode := strings.Index(out, `"node"`)
	qt.Check(t, iMessage < iCommand, qt.IsTrue, qt.Commentf("%s", out))
	qt.Check(t, iCommand < iNode, qt.IsTrue, qt.Commentf("%s", out))
}
