package command

import (
	"fmt"
	"strings"

	"github.com/google/shlex"
)

// FlagCodec converts between Args and --flag syntax.
//
// With OmitFalse unset, a false boolean still renders its bare flag name,
// which is how the mc wrappers always behaved. Setting OmitFalse drops
// false-valued flags instead.
type FlagCodec struct {
	OmitFalse bool
}

// FlagName turns an argument name into its flag spelling: underscores become
// hyphens and the name gets a "--" prefix.
func FlagName(key string) string {
	return "--" + strings.Replace(key, "_", "-", -1)
}

// Encode renders args as a space separated flag string. Keys are emitted in
// sorted order, values are quoted with Quote. A list value repeats the flag
// once per element.
func (c FlagCodec) Encode(args Args) string {
	flags := make([]string, 0, len(args))
	for _, key := range args.Keys() {
		name := FlagName(key)
		switch v := args[key].(type) {
		case bool:
			if !v && c.OmitFalse {
				continue
			}
			flags = append(flags, name)
		case []string:
			for _, item := range v {
				flags = append(flags, name+" "+Quote(item))
			}
		case nil:
			flags = append(flags, name)
		default:
			flags = append(flags, name+" "+Quote(fmt.Sprint(v)))
		}
	}
	return strings.Join(flags, " ")
}

// EncodeFlags renders args with the default codec.
func EncodeFlags(args Args) string {
	return FlagCodec{}.Encode(args)
}

// DecodeFlag parses a single "--flag-name [value]" token group back into an
// argument name and value. A flag without a value decodes to true. When more
// than one value token follows, the last one wins.
func DecodeFlag(flag string) (string, interface{}) {
	fields := words(flag)
	if len(fields) == 0 {
		return "", nil
	}
	name := strings.TrimLeft(fields[0], "-")
	name = strings.Replace(name, "-", "_", -1)
	if len(fields) == 1 {
		return name, true
	}
	return name, fields[len(fields)-1]
}

// DecodeFlags is the inverse of Encode. Repeated flags collect into a
// []string.
func DecodeFlags(text string) Args {
	out := Args{}
	fields := words(text)
	for i := 0; i < len(fields); i++ {
		if !strings.HasPrefix(fields[i], "--") {
			continue
		}
		name, value := DecodeFlag(fields[i])
		if i+1 < len(fields) && !strings.HasPrefix(fields[i+1], "--") {
			value = fields[i+1]
			i++
		}
		switch prev := out[name].(type) {
		case nil:
			out[name] = value
		case []string:
			out[name] = append(prev, fmt.Sprint(value))
		default:
			out[name] = []string{fmt.Sprint(prev), fmt.Sprint(value)}
		}
	}
	return out
}

// words splits text the way the blocking invoker does, falling back to plain
// whitespace splitting for unbalanced quotes.
func words(text string) []string {
	fields, err := shlex.Split(text)
	if err != nil {
		return strings.Fields(text)
	}
	return fields
}
