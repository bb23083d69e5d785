package dab_test

import (
	"context"
	"testing"
	"testing/fstest"

	qt "github.com/frankban/quicktest"
	"github.com/serum-errors/go-serum"

	"github.com/arcator/cmdperms/cpapi"
	"github.com/arcator/cmdperms/pkg/dab"
)

func str(s string) *string { return &s }

func TestCommandsFromFile(t *testing.T) {
	fsys := fstest.MapFS{
		"commands.json": &fstest.MapFile{Data: []byte(`{
			// exported from the proxy
			"data": [
				["any", "ban", "b, banish", "Ban a player", "/ban <player>"],
				["any", "kick", "", "Kick a player", null],
				[null, "list", null, null, null],
			]
		}`)},
	}
	records, err := dab.CommandsFromFile(context.Background(), fsys, "commands.json")
	qt.Assert(t, err, qt.IsNil)
	qt.Assert(t, records, qt.DeepEquals, []cpapi.CommandRecord{
		{Platform: str("any"), Name: "ban", Aliases: str("b, banish"), Description: str("Ban a player"), HelpText: str("/ban <player>")},
		{Platform: str("any"), Name: "kick", Aliases: str(""), Description: str("Kick a player"), HelpText: nil},
		{Platform: nil, Name: "list", Aliases: nil, Description: nil, HelpText: nil},
	})
}

func TestPermissionsFromFile(t *testing.T) {
	fsys := fstest.MapFS{
		"permissions.json": &fstest.MapFile{Data: []byte(`{"data": [
			["any", "ban", "group.mod.ban", "desc"],
			["any", null, "orphan.node", "desc"],
			["any", "ban", "", null]
		]}`)},
	}
	records, err := dab.PermissionsFromFile(context.Background(), fsys, "/permissions.json")
	qt.Assert(t, err, qt.IsNil)
	qt.Assert(t, records, qt.DeepEquals, []cpapi.PermissionRecord{
		{Platform: str("any"), Command: str("ban"), Node: str("group.mod.ban"), Description: str("desc")},
		{Platform: str("any"), Command: nil, Node: str("orphan.node"), Description: str("desc")},
		{Platform: str("any"), Command: str("ban"), Node: str(""), Description: nil},
	})
}

// A document holding only well-formed records loads every one of them.
func TestWellFormedRecordsAllLoad(t *testing.T) {
	fsys := fstest.MapFS{"commands.json": &fstest.MapFile{Data: []byte(`{"data": [
		["any", "ban", "b", "desc", "help"],
		[null, "mute", null, null, null]
	]}`)}}
	records, err := dab.CommandsFromFile(context.Background(), fsys, "commands.json")
	qt.Assert(t, err, qt.IsNil)
	qt.Assert(t, records, qt.DeepEquals, []cpapi.CommandRecord{
		{Platform: str("any"), Name: "ban", Aliases: str("b"), Description: str("desc"), HelpText: str("help")},
		{Name: "mute"},
	})
}

func TestEmptyDataList(t *testing.T) {
	fsys := fstest.MapFS{"commands.json": &fstest.MapFile{Data: []byte(`{"data": []}`)}}
	records, err := dab.CommandsFromFile(context.Background(), fsys, "commands.json")
	qt.Assert(t, err, qt.IsNil)
	qt.Assert(t, records, qt.HasLen, 0)
}

func TestLoadErrors(t *testing.T) {
	for _, tc := range []struct {
		name string
		body string // empty means the file is absent
		code string
	}{
		{"missing file", "", cpapi.ECodeMissing},
		{"not json", `{"data": [`, cpapi.ECodeSerialization},
		{"top level list", `[["any","ban","b","d","h"]]`, cpapi.ECodeDocumentInvalid},
		{"no data key", `{"rows": []}`, cpapi.ECodeDocumentInvalid},
		{"data not a list", `{"data": {"ban": "b"}}`, cpapi.ECodeDocumentInvalid},
		{"record too short", `{"data": [["any","ban","b","desc"]]}`, cpapi.ECodeRecordInvalid},
		{"record too long", `{"data": [["any","ban","b","desc","help","extra"]]}`, cpapi.ECodeRecordInvalid},
		{"record not a list", `{"data": ["ban"]}`, cpapi.ECodeRecordInvalid},
		{"numeric field", `{"data": [["any","ban",3,"desc","help"]]}`, cpapi.ECodeRecordInvalid},
		{"null name", `{"data": [["any",null,"b","desc","help"]]}`, cpapi.ECodeRecordInvalid},
	} {
		t.Run(tc.name, func(t *testing.T) {
			fsys := fstest.MapFS{}
			if tc.body != "" {
				fsys["commands.json"] = &fstest.MapFile{Data: []byte(tc.body)}
			}
			_, err := dab.CommandsFromFile(context.Background(), fsys, "commands.json")
			qt.Assert(t, err, qt.IsNotNil)
			qt.Assert(t, serum.Code(err), qt.Equals, tc.code)
		})
	}
}

func TestRecordErrorNamesIndex(t *testing.T) {
	fsys := fstest.MapFS{"permissions.json": &fstest.MapFile{Data: []byte(`{"data": [
		["any","ban","mod.ban","desc"],
		["any","kick","mod.kick"]
	]}`)}}
	_, err := dab.PermissionsFromFile(context.Background(), fsys, "permissions.json")
	qt.Assert(t, serum.Code(err), qt.Equals, cpapi.ECodeRecordInvalid)
	qt.Assert(t, err, qt.ErrorMatches, `.*invalid record 1 in "permissions.json": expected 4 fields, found 3`)
}
