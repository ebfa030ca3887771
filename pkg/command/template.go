package command

import (
	"fmt"
	"regexp"
	"strings"
)

// FlagsSlot is the reserved placeholder that receives the rendered flags.
const FlagsSlot = "flags"

var placeholder = regexp.MustCompile(`{(.+?)}`)

// RenderError reports a template that could not be fully substituted.
type RenderError struct {
	Template string
	Slot     string
	Reason   string
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render %q: slot {%s} %s", e.Template, e.Slot, e.Reason)
}

// Params returns the distinct placeholder names of tmpl in order of first
// appearance.
func Params(tmpl string) []string {
	var params []string
	seen := map[string]bool{}
	for _, m := range placeholder.FindAllStringSubmatch(tmpl, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			params = append(params, m[1])
		}
	}
	return params
}

// Render substitutes args into tmpl. Arguments that do not name a slot are
// encoded with codec into the {flags} slot, unless the caller supplied a
// "flags" argument of its own, which is used verbatim. Slot values are
// quoted with Quote, an empty string or nil leaves the slot empty. A slot
// without a value fails with a *RenderError before anything is executed.
func Render(tmpl string, args Args, codec FlagCodec) (string, error) {
	params := Params(tmpl)
	slots := make(map[string]bool, len(params))
	for _, p := range params {
		slots[p] = true
	}

	values := args.Clone()
	extra := Args{}
	for k, v := range args {
		if !slots[k] {
			extra[k] = v
		}
	}
	values.SetDefault(FlagsSlot, Raw(codec.Encode(extra)))
	if s, ok := values[FlagsSlot].(string); ok {
		values[FlagsSlot] = Raw(s)
	}

	var rerr error
	rendered := placeholder.ReplaceAllStringFunc(tmpl, func(m string) string {
		if rerr != nil {
			return m
		}
		slot := m[1 : len(m)-1]
		v, ok := values[slot]
		if !ok {
			rerr = &RenderError{Template: tmpl, Slot: slot, Reason: "has no value"}
			return m
		}
		s, err := positional(v)
		if err != nil {
			rerr = &RenderError{Template: tmpl, Slot: slot, Reason: err.Error()}
			return m
		}
		return s
	})
	if rerr != nil {
		return "", rerr
	}
	return squeeze(rendered), nil
}

func positional(v interface{}) (string, error) {
	switch t := v.(type) {
	case Raw:
		return string(t), nil
	case Words:
		quoted := make([]string, 0, len(t))
		for _, w := range t {
			quoted = append(quoted, Quote(w))
		}
		return strings.Join(quoted, " "), nil
	case string:
		if t == "" {
			return "", nil
		}
		return Quote(t), nil
	case []string, []interface{}:
		return "", fmt.Errorf("holds a list, join it before rendering")
	case nil:
		return "", nil
	default:
		return Quote(fmt.Sprint(t)), nil
	}
}
