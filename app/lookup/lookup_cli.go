package lookupcli

import (
	"github.com/MakeNowJust/heredoc"
	"github.com/ipld/go-ipld-prime/datamodel"
	"github.com/ipld/go-ipld-prime/fluent/qp"
	"github.com/ipld/go-ipld-prime/node/basicnode"
	"github.com/urfave/cli/v2"

	appbase "github.com/arcator/cmdperms/app/base"
	"github.com/arcator/cmdperms/app/base/util"
	"github.com/arcator/cmdperms/cpapi"
	"github.com/arcator/cmdperms/pkg/config"
	"github.com/arcator/cmdperms/pkg/logging"
	"github.com/arcator/cmdperms/pkg/permjoin"
)

func init() {
	appbase.App.Commands = append(appbase.App.Commands, lookupCmdDef)
}

var lookupCmdDef = &cli.Command{
	Name:      "lookup",
	Usage:     "Resolve chat commands to permission nodes using a generated table",
	ArgsUsage: "MESSAGE...",
	Description: heredoc.Doc(`
		Each MESSAGE is treated as a chat line, the way the server plugin sees it:
		a leading '/' is dropped, only the first word is kept, and it is lower-cased.

		For example, "/Ban Steve 1d" looks up "ban".

		Prints one 'command = "node"' line per message.
		The first message with no entry in the table stops the lookup with an error.
	`),
	Flags: []cli.Flag{util.TableFlag()},
	Action: util.ChainCmdMiddleware(cmdLookup,
		util.CmdMiddlewareLogging,
		util.CmdMiddlewareTracingConfig,
		util.CmdMiddlewareTracingSpan,
	),
}

type match struct {
	message string
	entry   cpapi.Entry
}

func cmdLookup(c *cli.Context) error {
	ctx := c.Context
	logger := logging.Ctx(ctx)

	if !c.Args().Present() {
		return cpapi.ErrorArgument("lookup requires at least one message")
	}
	state, err := util.LoadState()
	if err != nil {
		return err
	}
	table, err := util.LoadTable(ctx, state, config.TableFile(state, c.String("table")))
	if err != nil {
		return err
	}
	logger.Debug("lookup", "table has %d entries", table.Len())

	var matches []match
	for _, message := range c.Args().Slice() {
		command, node, err := table.Lookup(message)
		if err != nil {
			return err
		}
		m := match{message: message, entry: cpapi.Entry{Name: command, Node: node}}
		if logger.JSON() {
			matches = append(matches, m)
			continue
		}
		logger.OutRaw(permjoin.FormatLine(m.entry))
	}

	if logger.JSON() {
		result, err := matchesNode(matches)
		if err != nil {
			return cpapi.ErrorSerialization("building result", err)
		}
		c.App.Metadata[appbase.MetadataResult] = result
	}
	return nil
}

func matchesNode(matches []match) (datamodel.Node, error) {
	return qp.BuildMap(basicnode.Prototype.Any, 1, func(ma datamodel.MapAssembler) {
		qp.MapEntry(ma, "results", qp.List(int64(len(matches)), func(la datamodel.ListAssembler) {
			for _, m := range matches {
				m := m
				qp.ListEntry(la, qp.Map(3, func(ma datamodel.MapAssembler) {
					qp.MapEntry(ma, "message", qp.String(m.message))
					qp.MapEntry(ma, "command", qp.String(m.entry.Name))
					qp.MapEntry(ma, "node", qp.String(m.entry.Node))
				}))
			}
		}))
	})
}
