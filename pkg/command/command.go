package command

import "strings"

// DefaultFlags are appended to every command unless overridden.
var DefaultFlags = Args{"json": true}

// Command is one templated invocation of an administrative binary.
type Command struct {
	// Logical operation name, reported back in the response.
	Name string
	// Template with {slot} placeholders, e.g. "mc {flags} admin user list {target}".
	Template string
	// Flags merged over the caller's arguments before rendering.
	Flags Args
	// NoDeadline exempts long running commands (a foreground server) from
	// the executor timeout.
	NoDeadline bool
}

// New returns a command with the default flags.
func New(name, tmpl string) *Command {
	return &Command{
		Name:     name,
		Template: tmpl,
		Flags:    DefaultFlags.Clone(),
	}
}

// Program is the first word of the template, the binary to run.
func (c *Command) Program() string {
	fields := strings.Fields(c.Template)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// Render merges the command flags into args and renders the template.
func (c *Command) Render(args Args, codec FlagCodec) (string, error) {
	merged := args.Clone()
	merged.Merge(c.Flags)
	return Render(c.Template, merged, codec)
}
