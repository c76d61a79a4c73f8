package thread

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInputShape is matched by every ShapeError.
var ErrInputShape = errors.New("input shape")

// ShapeError reports input that does not follow the structural contract.
// Missing optional fields are defaulted and never produce a ShapeError.
type ShapeError struct {
	Path   string
	Reason string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("invalid thread input at %s: %s", e.Path, e.Reason)
}

func (e *ShapeError) Is(target error) bool {
	return target == ErrInputShape
}

func shapeErr(path, format string, args ...any) error {
	return &ShapeError{Path: path, Reason: fmt.Sprintf(format, args...)}
}

// Message is one email in a thread.
type Message struct {
	Timestamp   string   `json:"timestamp"`
	From        string   `json:"from"`
	To          []string `json:"to"`
	Body        string   `json:"body"`
	Attachments []string `json:"attachments,omitempty"`
}

// Thread is a subject plus its messages.
type Thread struct {
	Subject  string    `json:"subject"`
	Messages []Message `json:"messages"`
}

// First returns the earliest message, or false for an empty thread.
func (t Thread) First() (Message, bool) {
	if len(t.Messages) == 0 {
		return Message{}, false
	}
	return t.Messages[0], true
}

// Last returns the latest message, or false for an empty thread.
func (t Thread) Last() (Message, bool) {
	if len(t.Messages) == 0 {
		return Message{}, false
	}
	return t.Messages[len(t.Messages)-1], true
}

// Normalize converts a decoded JSON value into a canonical Thread.
// raw is typically the value stored under the "thread" key of a request;
// nil yields an empty thread.
func Normalize(raw any) (Thread, error) {
	const root = "thread"
	if raw == nil {
		return Thread{Messages: []Message{}}, nil
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return Thread{}, shapeErr(root, "expected object, got %s", kindOf(raw))
	}

	subject, err := optionalString(obj, "subject", root)
	if err != nil {
		return Thread{}, err
	}

	t := Thread{Subject: subject, Messages: []Message{}}
	rawMessages, present := obj["messages"]
	if !present || rawMessages == nil {
		return t, nil
	}
	list, ok := rawMessages.([]any)
	if !ok {
		return Thread{}, shapeErr(root+".messages", "expected array, got %s", kindOf(rawMessages))
	}
	t.Messages = make([]Message, 0, len(list))
	for i, item := range list {
		msg, err := normalizeMessage(item, fmt.Sprintf("%s.messages[%d]", root, i))
		if err != nil {
			return Thread{}, err
		}
		t.Messages = append(t.Messages, msg)
	}
	return t, nil
}

func normalizeMessage(raw any, path string) (Message, error) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return Message{}, shapeErr(path, "expected object, got %s", kindOf(raw))
	}
	var (
		msg Message
		err error
	)
	if msg.Timestamp, err = optionalString(obj, "timestamp", path); err != nil {
		return Message{}, err
	}
	if msg.From, err = optionalString(obj, "from", path); err != nil {
		return Message{}, err
	}
	if msg.Body, err = optionalString(obj, "body", path); err != nil {
		return Message{}, err
	}
	if msg.To, err = stringList(obj, "to", path, true); err != nil {
		return Message{}, err
	}
	if msg.Attachments, err = stringList(obj, "attachments", path, false); err != nil {
		return Message{}, err
	}
	return msg, nil
}

func optionalString(obj map[string]any, key, path string) (string, error) {
	v, ok := obj[key]
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", shapeErr(path+"."+key, "expected string, got %s", kindOf(v))
	}
	return s, nil
}

// stringList reads an array of strings. allowScalar wraps a bare string
// into a single-element list.
func stringList(obj map[string]any, key, path string, allowScalar bool) ([]string, error) {
	v, ok := obj[key]
	if !ok || v == nil {
		return []string{}, nil
	}
	switch val := v.(type) {
	case string:
		if allowScalar {
			return []string{val}, nil
		}
	case []string:
		return append([]string{}, val...), nil
	case []any:
		out := make([]string, 0, len(val))
		for i, item := range val {
			s, ok := item.(string)
			if !ok {
				return nil, shapeErr(fmt.Sprintf("%s.%s[%d]", path, key, i), "expected string, got %s", kindOf(item))
			}
			out = append(out, s)
		}
		return out, nil
	}
	return nil, shapeErr(path+"."+key, "expected array of strings, got %s", kindOf(v))
}

func kindOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64, float32, int, int64, int32, uint, uint64, uint32, json.Number:
		return "number"
	case []any, []string:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
