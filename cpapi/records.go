package cpapi

// CommandRecordArity and PermissionRecordArity are the number of positional
// fields each record carries in its source document.
const (
	CommandRecordArity    = 5
	PermissionRecordArity = 4
)

// CommandRecord describes one command as exported by the command registry:
// `[platform, name, aliases, description, helpText]`.
//
// Optional positions are pointers.
// A nil pointer means the document had `null` there;
// a pointer to the empty string means the field was present but empty.
// Consumers that only care about "has a value" should use Present.
type CommandRecord struct {
	Platform    *string
	Name        string
	Aliases     *string // Comma separated; whitespace around each alias is insignificant.
	Description *string
	HelpText    *string
}

// PermissionRecord associates a command with a permission node:
// `[platform, command, node, description]`.
type PermissionRecord struct {
	Platform    *string
	Command     *string
	Node        *string
	Description *string
}

// Entry is one line of a generated permission table.
// Name is a command or one of its aliases.
type Entry struct {
	Name string
	Node string
}

// Present reports whether an optional field holds a non-empty value.
func Present(s *string) bool {
	return s != nil && *s != ""
}
