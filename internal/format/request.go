package format

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/avivsinai/threadlabel/internal/thread"
)

// ErrMalformedJSON wraps every JSON syntax error from the request decoders.
var ErrMalformedJSON = errors.New("malformed JSON")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ParseRequest decodes a request document and returns the raw value stored
// under its "thread" key, ready for thread.Normalize. A null document or a
// missing "thread" key yields nil (an empty thread).
func ParseRequest(data []byte) (any, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedJSON, err)
	}
	if doc == nil {
		return nil, nil
	}
	obj, ok := doc.(map[string]any)
	if !ok {
		return nil, &thread.ShapeError{Path: "request", Reason: "expected object with a \"thread\" key"}
	}
	return obj["thread"], nil
}

// DecodeRequest reads r to EOF and parses it with ParseRequest.
func DecodeRequest(r io.Reader) (any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return ParseRequest(data)
}

func ReadRequestFile(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	raw, err := ParseRequest(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return raw, nil
}
