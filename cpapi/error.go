package cpapi

import (
	"encoding/json"
	"os"
	"strconv"

	"github.com/serum-errors/go-serum"
)

const (
	ECodeArgument        = "cmdperms-error-invalid-argument"
	ECodeDocumentInvalid = "cmdperms-error-document-invalid"
	ECodeInitialization  = "cmdperms-error-initialization"
	ECodeInternal        = "cmdperms-error-internal"
	ECodeIo              = "cmdperms-error-io"
	ECodeMissing         = "cmdperms-error-missing"
	ECodeRecordInvalid   = "cmdperms-error-record-invalid"
	ECodeSerialization   = "cmdperms-error-serialization"
	ECodeTableInvalid    = "cmdperms-error-table-invalid"
	ECodeTableStale      = "cmdperms-error-table-stale"
	ECodeUnknown         = "cmdperms-error-unknown"
	ECodeUnknownCommand  = "cmdperms-error-unknown-command"
)

// TerminalError emits an error on stdout as json, and halts immediately.
// Only for use during init, before any output protocol has been chosen.
func TerminalError(err serum.ErrorInterface, exitCode int) {
	json.NewEncoder(os.Stdout).Encode(struct {
		Error serum.ErrorInterface `json:"error"`
	}{err})
	os.Exit(exitCode)
}

// ErrorUnknown is returned when an unknown error occurs
//
// Errors:
//
//   - cmdperms-error-unknown --
func ErrorUnknown(msgTmpl string, cause error) error {
	return serum.Errorf(ECodeUnknown, "%s: %w", msgTmpl, cause)
}

// ErrorInternal is for miscellaneous errors that a user cannot be expected to fix.
// In most cases, prefer to use more specific errors.
//
// Errors:
//
//   - cmdperms-error-internal --
func ErrorInternal(msgTmpl string, cause error) error {
	return serum.Errorf(ECodeInternal, "%s: %w", msgTmpl, cause)
}

// ErrorArgument is returned when the command line cannot be used as given.
//
// Errors:
//
//   - cmdperms-error-invalid-argument --
func ErrorArgument(msg string) error {
	return serum.Error(ECodeArgument,
		serum.WithMessageTemplate("invalid argument: {{msg}}"),
		serum.WithDetail("msg", msg),
	)
}

// ErrorIo wraps generic I/O errors from the Go stdlib
//
// Errors:
//
//   - cmdperms-error-io --
func ErrorIo(context string, path string, cause error) error {
	result := serum.Errorf(ECodeIo, "io error: %s: %w", context, cause)
	addDetails(result, [][2]string{{"context", context}, {"path", path}})
	return result
}

// ErrorFileMissing is used when an expected input file does not exist
//
// Errors:
//
//   - cmdperms-error-missing --
func ErrorFileMissing(path string) error {
	return serum.Error(ECodeMissing,
		serum.WithMessageTemplate("file missing at path: {{path|q}}"),
		serum.WithDetail("path", path),
	)
}

// ErrorSerialization is returned when a document cannot be parsed at all.
//
// Errors:
//
//   - cmdperms-error-serialization --
func ErrorSerialization(context string, cause error) error {
	result := serum.Errorf(ECodeSerialization, "serialization error: %s: %w", context, cause)
	addDetails(result, [][2]string{{"context", context}})
	return result
}

// ErrorDocumentInvalid is returned when a document parses but does not have
// the `{"data": [...]}` shape.
//
// Errors:
//
//   - cmdperms-error-document-invalid --
func ErrorDocumentInvalid(path string, reason string) error {
	return serum.Error(ECodeDocumentInvalid,
		serum.WithMessageTemplate("invalid document {{path|q}}: {{reason}}"),
		serum.WithDetail("path", path),
		serum.WithDetail("reason", reason),
	)
}

// ErrorRecordInvalid is returned when one record inside the `data` list
// has the wrong number of fields, or a field of the wrong kind.
//
// Errors:
//
//   - cmdperms-error-record-invalid --
func ErrorRecordInvalid(path string, index int64, reason string) error {
	return serum.Error(ECodeRecordInvalid,
		serum.WithMessageTemplate("invalid record {{index}} in {{path|q}}: {{reason}}"),
		serum.WithDetail("path", path),
		serum.WithDetail("index", strconv.FormatInt(index, 10)),
		serum.WithDetail("reason", reason),
	)
}

// ErrorTableInvalid is returned when a generated permission table cannot be read back.
//
// Errors:
//
//   - cmdperms-error-table-invalid --
func ErrorTableInvalid(path string, cause error) error {
	result := serum.Errorf(ECodeTableInvalid, "invalid permission table %q: %w", path, cause)
	addDetails(result, [][2]string{{"path", path}})
	return result
}

// ErrorUnknownCommand is returned when a command has no permission node in a table.
//
// Errors:
//
//   - cmdperms-error-unknown-command --
func ErrorUnknownCommand(command string) error {
	return serum.Error(ECodeUnknownCommand,
		serum.WithMessageTemplate("no permission node for command {{command|q}}"),
		serum.WithDetail("command", command),
	)
}

// ErrorTableStale is returned when a generated permission table no longer matches its inputs.
//
// Errors:
//
//   - cmdperms-error-table-stale --
func ErrorTableStale(path string, missing, changed, extra int) error {
	return serum.Error(ECodeTableStale,
		serum.WithMessageTemplate("permission table {{path|q}} is out of date: {{missing}} missing, {{changed}} changed, {{extra}} extra"),
		serum.WithDetail("path", path),
		serum.WithDetail("missing", strconv.Itoa(missing)),
		serum.WithDetail("changed", strconv.Itoa(changed)),
		serum.WithDetail("extra", strconv.Itoa(extra)),
	)
}

func addDetails(err error, details [][2]string) {
	s := err.(*serum.ErrorValue)
	s.Data.Details = append(s.Data.Details, details...)
}
