package command

import (
	"regexp"
	"strings"
)

var unsafeChars = regexp.MustCompile(`[^\w@%+=:,./-]`)

// Raw is rendered into its slot verbatim. The {flags} slot holds Raw text
// produced by the codec.
type Raw string

// Words renders as separately quoted words, for list arguments that fill a
// single positional slot.
type Words []string

// Quote returns s as one word for both sh and shlex. Strings made only of
// safe characters come back unchanged, anything else is single-quoted with
// embedded quotes written as '\''.
func Quote(s string) string {
	if s == "" {
		return "''"
	}
	if !unsafeChars.MatchString(s) {
		return s
	}
	return "'" + strings.Replace(s, "'", `'\''`, -1) + "'"
}

// squeeze collapses runs of unquoted whitespace into single spaces and trims
// the ends. Quoted and escaped characters are copied as is.
func squeeze(s string) string {
	var b strings.Builder
	quoted, escaped, space := false, false, false
	for _, r := range s {
		switch {
		case escaped:
			escaped = false
		case quoted:
			if r == '\'' {
				quoted = false
			}
		case r == '\\':
			escaped = true
		case r == '\'':
			quoted = true
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			space = true
			continue
		}
		if space && b.Len() > 0 {
			b.WriteByte(' ')
		}
		space = false
		b.WriteRune(r)
	}
	return b.String()
}
