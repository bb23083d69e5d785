package util

import (
	"context"

	"github.com/urfave/cli/v2"

	"github.com/arcator/cmdperms/cpapi"
	"github.com/arcator/cmdperms/pkg/config"
	"github.com/arcator/cmdperms/pkg/dab"
	"github.com/arcator/cmdperms/pkg/logging"
	"github.com/arcator/cmdperms/pkg/permtable"
)

// InputFlags returns fresh flag values for the two input files.
// Each command that reads inputs gets its own instances; urfave/cli
// flags must not be shared between flag sets.
func InputFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:      "commands",
			Usage:     "Path to the command definitions (default: commands.json, or $CMDPERMS_COMMANDS)",
			TakesFile: true,
		},
		&cli.StringFlag{
			Name:      "permissions",
			Usage:     "Path to the permission definitions (default: permissions.json, or $CMDPERMS_PERMISSIONS)",
			TakesFile: true,
		},
	}
}

// TableFlag returns a fresh flag for the generated table path.
func TableFlag() cli.Flag {
	return &cli.StringFlag{
		Name:      "table",
		Usage:     "Path to a generated permission table (default: commandPermissions.toml, or $CMDPERMS_TABLE)",
		TakesFile: true,
	}
}

// Inputs holds both record collections as loaded from disk.
type Inputs struct {
	CommandsPath    string
	PermissionsPath string
	Commands        []cpapi.CommandRecord
	Permissions     []cpapi.PermissionRecord
}

// LoadInputs resolves the input paths from the command's flags and the
// environment, checks that both exist, and loads them in order.
// Nothing is read unless both files are present.
//
// Errors:
//
//   - cmdperms-error-initialization -- when process state cannot be read
//   - cmdperms-error-serialization -- when process state cannot be copied, or an input is not JSON
//   - cmdperms-error-missing -- when an input file does not exist
//   - cmdperms-error-io -- when an input file cannot be read
//   - cmdperms-error-document-invalid -- when an input document has the wrong shape
//   - cmdperms-error-record-invalid -- when a record has the wrong shape
func LoadInputs(c *cli.Context, state config.State) (*Inputs, error) {
	ctx := c.Context
	in := &Inputs{
		CommandsPath:    config.CommandsFile(state, c.String("commands")),
		PermissionsPath: config.PermissionsFile(state, c.String("permissions")),
	}
	logger := logging.Ctx(ctx)
	logger.Debug("inputs", "commands=%q permissions=%q", in.CommandsPath, in.PermissionsPath)

	cmdFS, cmdName := InputFile(state, in.CommandsPath)
	if err := RequireFile(cmdFS, cmdName, in.CommandsPath); err != nil {
		return nil, err
	}
	permFS, permName := InputFile(state, in.PermissionsPath)
	if err := RequireFile(permFS, permName, in.PermissionsPath); err != nil {
		return nil, err
	}

	var err error
	in.Commands, err = dab.CommandsFromFile(ctx, cmdFS, cmdName)
	if err != nil {
		return nil, err
	}
	in.Permissions, err = dab.PermissionsFromFile(ctx, permFS, permName)
	if err != nil {
		return nil, err
	}
	return in, nil
}

// LoadTable reads a generated permission table from a user-supplied path.
//
// Errors:
//
//   - cmdperms-error-missing -- when the table file does not exist
//   - cmdperms-error-io -- when the table file cannot be read
//   - cmdperms-error-table-invalid -- when the table is not TOML of string values
func LoadTable(ctx context.Context, state config.State, path string) (*permtable.Table, error) {
	logging.Ctx(ctx).Debug("inputs", "table=%q", path)
	fsys, name := InputFile(state, path)
	if err := RequireFile(fsys, name, path); err != nil {
		return nil, err
	}
	return permtable.Load(fsys, name)
}
