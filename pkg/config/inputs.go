package config

// CommandsFile picks the command definitions path.
// An explicit value (typically from a flag) wins, then the environment, then the default.
func CommandsFile(state State, explicit string) string {
	return pick(state, explicit, EnvCmdpermsCommands, DefaultCommandsFilename)
}

// PermissionsFile picks the permission definitions path.
func PermissionsFile(state State, explicit string) string {
	return pick(state, explicit, EnvCmdpermsPermissions, DefaultPermissionsFilename)
}

// TableFile picks the generated table path.
func TableFile(state State, explicit string) string {
	return pick(state, explicit, EnvCmdpermsTable, DefaultTableFilename)
}

func pick(state State, explicit, envKey, fallback string) string {
	if explicit != "" {
		return explicit
	}
	if v, ok := state.Env[envKey]; ok && v != "" {
		return v
	}
	return fallback
}

// TableRequested reports whether the user asked for a table, either explicitly or via the environment.
func TableRequested(state State, explicit string) bool {
	if explicit != "" {
		return true
	}
	v, ok := state.Env[EnvCmdpermsTable]
	return ok && v != ""
}
