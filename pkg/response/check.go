package response

import "fmt"

// OperationError is a failure reported by mc itself in its JSON output.
type OperationError struct {
	Name    string
	Message string
	Cause   string
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("%s:%s", e.Message, e.Cause)
}

// CheckError returns an *OperationError when r carries an error status and
// nil otherwise. The message comes from content.error.message, the cause from
// content.error.cause.message; either is empty when absent.
func CheckError(r *Response) error {
	if r == nil || r.Status != StatusError {
		return nil
	}
	errObj := lookup(r.Content, "error")
	return &OperationError{
		Name:    r.Name,
		Message: str(lookup(errObj, "message")),
		Cause:   str(lookup(lookup(errObj, "cause"), "message")),
	}
}

func lookup(v interface{}, key string) interface{} {
	if m, ok := v.(map[string]interface{}); ok {
		return m[key]
	}
	return nil
}

func str(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}
