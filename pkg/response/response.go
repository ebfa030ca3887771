// Package response holds the structured result of one mc invocation and the
// classifier that turns a tool-reported error into a Go error.
package response

import (
	"encoding/json"
	"fmt"

	"github.com/serverlessresearch/mcadmin/pkg/normalize"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Response is the result of one operation. It is not modified after New.
type Response struct {
	// Exact command line that was executed.
	Command string `json:"command"`
	// Logical operation name.
	Name string `json:"name"`
	// Raw process output fed to the normalizer, encoded as a JSON string.
	Output []byte `json:"-"`
	// Normalized JSON text.
	JSON string `json:"json"`
	// Parsed JSON value.
	Content interface{} `json:"content"`
	// "success" unless Content is an object carrying another status.
	Status string `json:"status"`
}

// New normalizes output and derives the status. It fails only when the
// output cannot be turned into JSON.
func New(command, name string, output []byte) (*Response, error) {
	text, content, err := normalize.Normalize(output)
	if err != nil {
		return nil, err
	}
	return &Response{
		Command: command,
		Name:    name,
		Output:  output,
		JSON:    text,
		Content: content,
		Status:  statusOf(content),
	}, nil
}

// MarshalJSON emits the response shape
// {command, name, output, json, content, status} with output as text.
func (r Response) MarshalJSON() ([]byte, error) {
	type plain Response
	return json.Marshal(struct {
		plain
		Output string `json:"output"`
	}{plain(r), string(r.Output)})
}

func statusOf(content interface{}) string {
	switch c := content.(type) {
	case map[string]interface{}:
		if s, ok := c["status"].(string); ok {
			return s
		}
	}
	return StatusSuccess
}

// Succeeded reports whether the tool did not flag an error.
func (r *Response) Succeeded() bool {
	return r.Status != StatusError
}

// Records returns the content as a list of objects: a single object becomes
// a one element list, non-object entries are skipped.
func (r *Response) Records() []map[string]interface{} {
	switch c := r.Content.(type) {
	case map[string]interface{}:
		return []map[string]interface{}{c}
	case []interface{}:
		out := make([]map[string]interface{}, 0, len(c))
		for _, item := range c {
			if m, ok := item.(map[string]interface{}); ok {
				out = append(out, m)
			}
		}
		return out
	}
	return nil
}

func (r *Response) String() string {
	return fmt.Sprintf("Response[name='%s', status='%s']", r.Name, r.Status)
}
