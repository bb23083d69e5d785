package generatecli

import (
	"github.com/MakeNowJust/heredoc"
	"github.com/ipld/go-ipld-prime/datamodel"
	"github.com/ipld/go-ipld-prime/fluent/qp"
	"github.com/ipld/go-ipld-prime/node/basicnode"
	"github.com/urfave/cli/v2"

	appbase "github.com/arcator/cmdperms/app/base"
	"github.com/arcator/cmdperms/app/base/util"
	"github.com/arcator/cmdperms/cpapi"
	"github.com/arcator/cmdperms/pkg/logging"
	"github.com/arcator/cmdperms/pkg/permjoin"
)

func init() {
	appbase.App.Commands = append(appbase.App.Commands, generateCmdDef)

	// With no subcommand, cmdperms behaves as `cmdperms generate`.
	appbase.App.Flags = append(appbase.App.Flags, util.InputFlags()...)
	appbase.App.Action = util.ChainCmdMiddleware(cmdDefault,
		util.CmdMiddlewareLogging,
		util.CmdMiddlewareTracingConfig,
		util.CmdMiddlewareTracingSpan,
	)
}

var generateCmdDef = &cli.Command{
	Name:  "generate",
	Usage: "Print the command to permission node table",
	Description: heredoc.Doc(`
		Reads the command definitions and permission definitions, and prints
		one line per command and alias, in the form:

		    name = "node"

		Only commands that declare aliases are listed.  When several permission
		records name the same command, the longest node is used.
		Lines are sorted by command, then by name within a command.

		With --json, the same table is printed as {"entries":[{"name":..,"node":..}]}.
	`),
	Flags: util.InputFlags(),
	Action: util.ChainCmdMiddleware(cmdGenerate,
		util.CmdMiddlewareLogging,
		util.CmdMiddlewareTracingConfig,
		util.CmdMiddlewareTracingSpan,
	),
}

func cmdDefault(c *cli.Context) error {
	if c.Args().Present() {
		return cpapi.ErrorArgument("unknown command " + c.Args().First())
	}
	return cmdGenerate(c)
}

func cmdGenerate(c *cli.Context) error {
	ctx := c.Context
	logger := logging.Ctx(ctx)

	state, err := util.LoadState()
	if err != nil {
		return err
	}
	in, err := util.LoadInputs(c, state)
	if err != nil {
		return err
	}
	nodes, aliases := permjoin.Join(ctx, in.Commands, in.Permissions)

	if logger.JSON() {
		result, err := entriesNode(permjoin.Entries(nodes, aliases))
		if err != nil {
			return cpapi.ErrorSerialization("building result", err)
		}
		c.App.Metadata[appbase.MetadataResult] = result
		return nil
	}

	n, err := permjoin.Emit(ctx, c.App.Writer, nodes, aliases)
	logger.Debug("generate", "wrote %d lines", n)
	return err
}

// entriesNode builds the --json form of the table.
func entriesNode(entries []cpapi.Entry) (datamodel.Node, error) {
	return qp.BuildMap(basicnode.Prototype.Any, 1, func(ma datamodel.MapAssembler) {
		qp.MapEntry(ma, "entries", qp.List(int64(len(entries)), func(la datamodel.ListAssembler) {
			for _, e := range entries {
				e := e
				qp.ListEntry(la, qp.Map(2, func(ma datamodel.MapAssembler) {
					qp.MapEntry(ma, "name", qp.String(e.Name))
					qp.MapEntry(ma, "node", qp.String(e.Node))
				}))
			}
		}))
	})
}
