package format

import (
	"bytes"
	"encoding/json"
	"io"
)

// MarshalResult renders v as two-space indented JSON with a trailing
// newline. HTML-sensitive characters and non-ASCII text are written as-is.
func MarshalResult(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func WriteResult(w io.Writer, v any) error {
	data, err := MarshalResult(v)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
