package errors

import (
	"bytes"
	"fmt"
	"runtime"
	"text/template"
	"time"
)

type Code string

func (c Code) New(msg string) *Error {
	return &Error{
		Code:      c,
		Message:   msg,
		Details:   make(map[string]interface{}),
		Stack:     getStack(),
		Timestamp: time.Now(),
	}
}

func WithPrefix(prefix string) func() Code {
	counter := int64(0)
	return func() Code {
		counter++
		return Code(fmt.Sprintf("%s_%04d", prefix, counter))
	}
}

// Error is a coded error with a text/template message rendered against Details.
// Sentinel values are never mutated: WithDetail and WithCause return copies,
// and Is matches any copy carrying the same Code.
type Error struct {
	Code      Code                   `json:"code"`
	Message   string                 `json:"message"`
	Details   map[string]interface{} `json:"details,omitempty"`
	Cause     error                  `json:"-"`
	Stack     string                 `json:"-"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *Error) Error() string {
	msg, ok := e.render()
	if !ok {
		msg = e.Message
	}
	if msg == "" {
		return ""
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, msg, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, msg)
}

func (e *Error) render() (msg string, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			ok = false
		}
	}()

	t, err := template.New("error").Parse(e.Message)
	if err != nil {
		return "", false
	}

	var output bytes.Buffer
	if err = t.Execute(&output, e.Details); err != nil {
		return "", false
	}
	return output.String(), true
}

func (e *Error) WithCause(err error) *Error {
	cp := e.clone()
	cp.Cause = err
	return cp
}

func (e *Error) WithDetail(key string, value interface{}) *Error {
	cp := e.clone()
	cp.Details[key] = value
	return cp
}

func (e *Error) Detail(key string) (interface{}, bool) {
	v, ok := e.Details[key]
	return v, ok
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t == nil {
		return false
	}
	return e.Code == t.Code
}

func (e *Error) clone() *Error {
	details := make(map[string]interface{}, len(e.Details)+1)
	for k, v := range e.Details {
		details[k] = v
	}
	return &Error{
		Code:      e.Code,
		Message:   e.Message,
		Details:   details,
		Cause:     e.Cause,
		Stack:     getStack(),
		Timestamp: time.Now(),
	}
}

func getStack() string {
	buf := make([]byte, 4096)
	n := runtime.Stack(buf, false)
	return string(buf[:n])
}
