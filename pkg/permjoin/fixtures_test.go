package permjoin_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"testing/fstest"

	qt "github.com/frankban/quicktest"
	"github.com/warpfork/go-testmark"

	"github.com/arcator/cmdperms/pkg/dab"
	"github.com/arcator/cmdperms/pkg/permjoin"
)

func TestJoinFixtures(t *testing.T) {
	filename := "../../examples/100-join/join.md"
	t.Logf("file://%s", filename)
	doc, err := testmark.ReadFile(filename)
	qt.Assert(t, err, qt.IsNil)
	doc.BuildDirIndex()

	for _, dir := range doc.DirEnt.ChildrenList {
		dir := dir
		t.Run(dir.Name, func(t *testing.T) {
			fsys := fstest.MapFS{}
			for _, name := range []string{"commands.json", "permissions.json"} {
				child := dir.Children[name]
				qt.Assert(t, child, qt.Not(qt.IsNil), qt.Commentf("fixture needs a %s hunk", name))
				fsys[name] = &fstest.MapFile{Data: child.Hunk.Body}
			}
			expect := dir.Children["output"]
			qt.Assert(t, expect, qt.Not(qt.IsNil))

			ctx := context.Background()
			commands, err := dab.CommandsFromFile(ctx, fsys, "commands.json")
			qt.Assert(t, err, qt.IsNil)
			perms, err := dab.PermissionsFromFile(ctx, fsys, "permissions.json")
			qt.Assert(t, err, qt.IsNil)

			var buf bytes.Buffer
			nodes, aliases := permjoin.Join(ctx, commands, perms)
			_, err = permjoin.Emit(ctx, &buf, nodes, aliases)
			qt.Assert(t, err, qt.IsNil)
			want := string(expect.Hunk.Body)
			if want != "" && !strings.HasSuffix(want, "\n") {
				want += "\n"
			}
			qt.Assert(t, buf.String(), qt.Equals, want)
		})
	}
}
