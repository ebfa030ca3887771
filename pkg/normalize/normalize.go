// Package normalize repairs the near-JSON printed by mc --json into a value
// encoding/json can load.
//
// mc prints one JSON object per line when a command yields several records
// and a single object otherwise. Lines are stitched together with commas and,
// when the result is not valid JSON on its own, wrapped into an array.
package normalize

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Processor is one text repair pass.
type Processor func(string) string

// Processors are applied in order by Clean.
var Processors = []Processor{
	StripNewlines,
	ReplaceNewlines,
	OpeningCurls,
	ClosingCurls,
	DedupCommas,
}

func StripNewlines(s string) string { return strings.Trim(s, "\n") }

func ReplaceNewlines(s string) string { return strings.Replace(s, "\n", ",", -1) }

func OpeningCurls(s string) string { return strings.Replace(s, "{,", "{", -1) }

func ClosingCurls(s string) string { return strings.Replace(s, ",}", "}", -1) }

func DedupCommas(s string) string { return strings.Replace(s, ",,", ",", -1) }

// DecodeError is returned when output stays unparseable after every repair.
type DecodeError struct {
	Text string
	Err  error
}

func (e *DecodeError) Error() string {
	text := e.Text
	if len(text) > 120 {
		text = text[:120] + "..."
	}
	return fmt.Sprintf("decode output %q: %v", text, e.Err)
}

// Clean decodes raw as UTF-8 text and runs every Processor over it.
func Clean(raw []byte) string {
	s := string(raw)
	for _, p := range Processors {
		s = p(s)
	}
	return s
}

// MakeJSON returns the cleaned output as a loadable JSON document. Text that
// fails to parse is retried wrapped in [ and ], which also turns empty output
// into an empty array.
func MakeJSON(raw []byte) (string, error) {
	cleaned := Clean(raw)
	if json.Valid([]byte(cleaned)) {
		return cleaned, nil
	}
	wrapped := "[" + cleaned + "]"
	if _, err := Parse(wrapped); err != nil {
		return "", &DecodeError{Text: cleaned, Err: err}
	}
	return wrapped, nil
}

// Parse loads text into a generic JSON value: map[string]interface{},
// []interface{}, string, float64, bool or nil.
func Parse(text string) (interface{}, error) {
	var v interface{}
	if err := json.Unmarshal([]byte(text), &v); err != nil {
		return nil, err
	}
	return v, nil
}

// Normalize cleans raw and parses it, returning both the JSON text and the
// parsed value.
func Normalize(raw []byte) (string, interface{}, error) {
	text, err := MakeJSON(raw)
	if err != nil {
		return "", nil, err
	}
	v, err := Parse(text)
	if err != nil {
		return "", nil, &DecodeError{Text: text, Err: err}
	}
	return text, v, nil
}
