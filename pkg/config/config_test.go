package config

import (
	"os"
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestInputFilePrecedence(t *testing.T) {
	empty := State{Env: map[string]string{}}
	withEnv := State{Env: map[string]string{
		EnvCmdpermsCommands:    "env/commands.json",
		EnvCmdpermsPermissions: "",
		EnvCmdpermsTable:       "env/table.toml",
	}}

	qt.Check(t, CommandsFile(empty, ""), qt.Equals, DefaultCommandsFilename)
	qt.Check(t, CommandsFile(withEnv, ""), qt.Equals, "env/commands.json")
	qt.Check(t, CommandsFile(withEnv, "flag.json"), qt.Equals, "flag.json")

	// an empty env var does not shadow the default
	qt.Check(t, PermissionsFile(withEnv, ""), qt.Equals, DefaultPermissionsFilename)

	qt.Check(t, TableFile(empty, ""), qt.Equals, DefaultTableFilename)
	qt.Check(t, TableFile(withEnv, ""), qt.Equals, "env/table.toml")
}

func TestNewStateIsACopy(t *testing.T) {
	qt.Assert(t, ReloadGlobalState(), qt.IsNil)
	a, err := NewState()
	qt.Assert(t, err, qt.IsNil)
	qt.Assert(t, a.WorkingDirectory, qt.Not(qt.Equals), "")
	a.Env["CMDPERMS_SCRATCH"] = "x"

	b, err := NewState()
	qt.Assert(t, err, qt.IsNil)
	_, ok := b.Env["CMDPERMS_SCRATCH"]
	qt.Assert(t, ok, qt.IsFalse)
}

func TestTableRequested(t *testing.T) {
	qt.Check(t, TableRequested(State{Env: map[string]string{}}, ""), qt.IsFalse)
	qt.Check(t, TableRequested(State{Env: map[string]string{}}, "t.toml"), qt.IsTrue)
	qt.Check(t, TableRequested(State{Env: map[string]string{EnvCmdpermsTable: "t.toml"}}, ""), qt.IsTrue)
	qt.Check(t, TableRequested(State{Env: map[string]string{EnvCmdpermsTable: ""}}, ""), qt.IsFalse)
}

func TestReloadGlobalStateSeesEnvAndWorkingDirectory(t *testing.T) {
	t.Setenv(EnvCmdpermsCommands, "from-env.json")
	dir := t.TempDir()
	pwd, err := os.Getwd()
	qt.Assert(t, err, qt.IsNil)
	qt.Assert(t, os.Chdir(dir), qt.IsNil)
	t.Cleanup(func() {
		os.Chdir(pwd)
		ReloadGlobalState()
	})

	qt.Assert(t, ReloadGlobalState(), qt.IsNil)
	state, err := NewState()
	qt.Assert(t, err, qt.IsNil)
	qt.Check(t, CommandsFile(state, ""), qt.Equals, "from-env.json")
	wd, err := os.Getwd()
	qt.Assert(t, err, qt.IsNil)
	qt.Check(t, state.WorkingDirectory, qt.Equals, wd)
}
