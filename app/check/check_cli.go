package checkcli

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
	appbase.App.Commands = append(appbase.App.Commands, checkCmdDef)
}

var checkCmdDef = &cli.Command{
	Name:  "check",
	Usage: "Check input files for syntax and sanity",
	Description: heredoc.Doc(`
		Loads and validates both input documents and prints a summary.

		If --table is given (or CMDPERMS_TABLE is set), the generated table at
		that path is also read, and compared with what 'generate' would print now.
		Any difference is reported and the check fails.
	`),
	Flags: append(util.InputFlags(), util.TableFlag()),
	Action: util.ChainCmdMiddleware(cmdCheck,
		util.CmdMiddlewareLogging,
		util.CmdMiddlewareTracingConfig,
		util.CmdMiddlewareTracingSpan,
	),
}

type summary struct {
	commands     int
	aliased      int
	permissions  int
	nodes        int
	entries      int
	table        string
	tableEntries int
}

func cmdCheck(c *cli.Context) error {
	ctx := c.Context
	logger := logging.Ctx(ctx)

	if c.Args().Present() {
		return cpapi.ErrorArgument("check takes no positional arguments")
	}
	state, err := util.LoadState()
	if err != nil {
		return err
	}
	in, err := util.LoadInputs(c, state)
	if err != nil {
		return err
	}
	nodes, aliases := permjoin.Join(ctx, in.Commands, in.Permissions)
	entries := permjoin.Entries(nodes, aliases)

	s := summary{
		commands:    len(in.Commands),
		aliased:     len(aliases),
		permissions: len(in.Permissions),
		nodes:       len(nodes),
		entries:     len(entries),
	}

	if config.TableRequested(state, c.String("table")) {
		s.table = config.TableFile(state, c.String("table"))
		table, err := util.LoadTable(ctx, state, s.table)
		if err != nil {
			return err
		}
		s.tableEntries = table.Len()
		d := table.Compare(entries)
		if !d.Empty() {
			for _, name := range d.Missing {
				logger.Info("check", "missing from table: %s", name)
			}
			for _, name := range d.Changed {
				logger.Info("check", "node changed: %s", name)
			}
			for _, name := range d.Extra {
				logger.Info("check", "not expected in table: %s", name)
			}
			return cpapi.ErrorTableStale(s.table, len(d.Missing), len(d.Changed), len(d.Extra))
		}
	}

	if logger.JSON() {
		result, err := s.node()
		if err != nil {
			return cpapi.ErrorSerialization("building result", err)
		}
		c.App.Metadata[appbase.MetadataResult] = result
		return nil
	}
	logger.Out("%s: %d commands, %d with aliases", in.CommandsPath, s.commands, s.aliased)
	logger.Out("%s: %d permissions, %d commands with a node", in.PermissionsPath, s.permissions, s.nodes)
	logger.Out("entries: %d", s.entries)
	if s.table != "" {
		logger.Out("%s: up to date (%d entries)", s.table, s.tableEntries)
	}
	return nil
}

func (s summary) node() (datamodel.Node, error) {
	return qp.BuildMap(basicnode.Prototype.Any, 6, func(ma datamodel.MapAssembler) {
		qp.MapEntry(ma, "commands", qp.Int(int64(s.commands)))
		qp.MapEntry(ma, "aliased", qp.Int(int64(s.aliased)))
		qp.MapEntry(ma, "permissions", qp.Int(int64(s.permissions)))
		qp.MapEntry(ma, "nodes", qp.Int(int64(s.nodes)))
		qp.MapEntry(ma, "entries", qp.Int(int64(s.entries)))
		if s.table != "" {
			qp.MapEntry(ma, "table", qp.String(s.table))
		}
	})
}
