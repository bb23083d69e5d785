package config

const (
	// EnvCmdpermsCommands overrides the path of the command definitions document.
	EnvCmdpermsCommands = "CMDPERMS_COMMANDS"
	// EnvCmdpermsPermissions overrides the path of the permission definitions document.
	EnvCmdpermsPermissions = "CMDPERMS_PERMISSIONS"
	// EnvCmdpermsTable overrides the path of a generated permission table, for commands that read one back.
	EnvCmdpermsTable = "CMDPERMS_TABLE"
)

// NOTE: keep this up to date or the config loader won't load them
var envKeys = []string{
	EnvCmdpermsCommands,
	EnvCmdpermsPermissions,
	EnvCmdpermsTable,
}

// Default file names, resolved relative to the working directory.
const (
	DefaultCommandsFilename    = "commands.json"
	DefaultPermissionsFilename = "permissions.json"
	DefaultTableFilename       = "commandPermissions.toml"
)
