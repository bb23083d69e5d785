package util

import (
	"path/filepath"
	"strings"

	"github.com/warpfork/go-fsx"
	"github.com/warpfork/go-fsx/osfs"

	"github.com/arcator/cmdperms/cpapi"
	"github.com/arcator/cmdperms/pkg/config"
)

// LoadState refreshes and snapshots the process state.
// Commands call this at the start of their action so that a working directory
// change since process start (tests do this) is respected.
//
// Errors:
//
//   - cmdperms-error-initialization -- when the working directory cannot be found
//   - cmdperms-error-serialization -- when the state snapshot cannot be copied
func LoadState() (config.State, error) {
	if err := config.ReloadGlobalState(); err != nil {
		return config.State{}, err
	}
	return config.NewState()
}

// InputFile locates a user-supplied path.
// It returns a filesystem and the name of the file within it.
// Relative paths that stay inside the working directory are opened relative
// to it (which keeps error messages short); anything else is opened from "/".
func InputFile(state config.State, path string) (fsx.FS, string) {
	if !filepath.IsAbs(path) {
		clean := filepath.Clean(path)
		if clean != ".." && !strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
			return osfs.DirFS(state.WorkingDirectory), filepath.ToSlash(clean)
		}
		path = filepath.Join(state.WorkingDirectory, path)
	}
	return osfs.DirFS("/"), filepath.ToSlash(path[1:])
}

// RequireFile checks that name is a regular file in fsys before any work starts,
// so that a typo is reported as such rather than as a read failure later.
// The error names the path as the user gave it.
//
// Errors:
//
//   - cmdperms-error-missing -- when there is no file at that path
func RequireFile(fsys fsx.FS, name string, given string) error {
	if isFile, _ := fsx.IsPathFile(fsys, name); !isFile {
		return cpapi.ErrorFileMissing(given)
	}
	return nil
}
