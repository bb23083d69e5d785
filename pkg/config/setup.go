package config

import (
	"bytes"
	"encoding/json"
	"os"
	"sync"

	"github.com/serum-errors/go-serum"

	"github.com/arcator/cmdperms/cpapi"
)

// State is what cmdperms needs from its process: the CMDPERMS_* variables
// that were set, and the directory that relative input paths resolve against.
type State struct {
	Env              map[string]string
	WorkingDirectory string
}

// global is loaded at init and again by every command, via ReloadGlobalState.
// The lock lets a command copy it while a test harness reloads it.
var (
	globalm sync.RWMutex
	global  State
)

// ReloadGlobalState re-reads the CMDPERMS_* variables and the working directory.
// Unset variables are absent from Env; a variable set to "" is kept, and the
// path helpers treat it like an unset one.
//
// Errors:
//
//   - cmdperms-error-initialization -- when the working directory cannot be found
func ReloadGlobalState() error {
	env := make(map[string]string, len(envKeys))
	for _, key := range envKeys {
		if v, ok := os.LookupEnv(key); ok {
			env[key] = v
		}
	}
	wd, err := workingDirectory()
	if err != nil {
		return err
	}

	globalm.Lock()
	defer globalm.Unlock()
	global = State{Env: env, WorkingDirectory: wd}
	return nil
}

// NewState returns a deep copy of the loaded state, for one command to use and modify.
//
// Errors:
//
//   - cmdperms-error-serialization -- when the copy fails
func NewState() (State, error) {
	var buf bytes.Buffer
	globalm.RLock()
	err := json.NewEncoder(&buf).Encode(global)
	globalm.RUnlock()
	if err != nil {
		return State{}, serum.Error(cpapi.ECodeSerialization, serum.WithCause(err))
	}
	var result State
	if err := json.NewDecoder(&buf).Decode(&result); err != nil {
		return State{}, serum.Error(cpapi.ECodeSerialization, serum.WithCause(err))
	}
	return result, nil
}

// A process that cannot find its own working directory can do nothing useful,
// so init reports the failure and exits before any command runs.
func init() {
	if err := ReloadGlobalState(); err != nil {
		serr, ok := err.(serum.ErrorInterface)
		if !ok {
			serr = serum.Error(cpapi.ECodeUnknown,
				serum.WithMessageLiteral("config initialization failed"),
				serum.WithCause(err),
			).(serum.ErrorInterface)
		}
		cpapi.TerminalError(serr, 10)
	}
}

// Errors:
//
//   - cmdperms-error-initialization -- when the working directory path cannot be found
func workingDirectory() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", serum.Error(cpapi.ECodeInitialization,
			serum.WithMessageLiteral("unable to get working directory"),
			serum.WithCause(err),
		)
	}
	return cwd, nil
}
