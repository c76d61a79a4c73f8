package format

import (
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/emersion/go-message"
	_ "github.com/emersion/go-message/charset"
	"github.com/emersion/go-message/mail"
	"github.com/k3a/html2text"

	"github.com/avivsinai/threadlabel/internal/thread"
)

// replyPrefix matches one leading reply or forward marker, including the
// Vietnamese "TL:" (trả lời) and "CT:" (chuyển tiếp) forms.
var replyPrefix = regexp.MustCompile(`(?i)^\s*(?:re|fwd?|aw|tl|ct)\s*(?:\[\d+\]|\(\d+\))?\s*:\s*`)

// BaseSubject strips any number of leading reply and forward markers.
func BaseSubject(subject string) string {
	for {
		next := replyPrefix.ReplaceAllString(subject, "")
		if next == subject {
			return strings.TrimSpace(subject)
		}
		subject = next
	}
}

// EML is one parsed RFC 5322 message.
type EML struct {
	Subject string
	Message thread.Message
}

// ParseEML reads a single message. Date is rendered as RFC 3339 when it
// parses, otherwise the raw header is kept. The body is the first
// text/plain part, falling back to the first text/html part converted to
// text. Attachment file names are collected from attachment parts.
func ParseEML(r io.Reader) (EML, error) {
	mr, err := mail.CreateReader(r)
	if err != nil && !message.IsUnknownCharset(err) {
		return EML{}, fmt.Errorf("parse message: %w", err)
	}
	defer func() { _ = mr.Close() }()

	var out EML
	out.Subject, _ = mr.Header.Subject()
	out.Message = thread.Message{
		Timestamp: emlDate(mr.Header),
		From:      firstAddress(mr.Header, "From"),
		To:        addresses(mr.Header, "To"),
	}

	var plain, html string
	var havePlain, haveHTML bool
	for {
		p, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil && !message.IsUnknownCharset(err) {
			return EML{}, fmt.Errorf("read part: %w", err)
		}
		if p == nil {
			continue
		}
		switch h := p.Header.(type) {
		case *mail.InlineHeader:
			mediaType, _, _ := h.ContentType()
			if mediaType == "" {
				mediaType = "text/plain"
			}
			switch {
			case mediaType == "text/plain" && !havePlain:
				b, err := io.ReadAll(p.Body)
				if err != nil {
					return EML{}, fmt.Errorf("read text part: %w", err)
				}
				plain, havePlain = string(b), true
			case mediaType == "text/html" && !haveHTML:
				b, err := io.ReadAll(p.Body)
				if err != nil {
					return EML{}, fmt.Errorf("read html part: %w", err)
				}
				html, haveHTML = string(b), true
			}
		case *mail.AttachmentHeader:
			name, _ := h.Filename()
			if name == "" {
				name = "unnamed"
			}
			out.Message.Attachments = append(out.Message.Attachments, name)
		}
	}

	switch {
	case havePlain:
		out.Message.Body = strings.TrimSpace(plain)
	case haveHTML:
		out.Message.Body = strings.TrimSpace(html2text.HTML2Text(html))
	}
	return out, nil
}

// ThreadFromEML builds one thread from message files. The subject comes
// from the first file with its reply markers removed.
func ThreadFromEML(paths ...string) (thread.Thread, error) {
	t := thread.Thread{Messages: make([]thread.Message, 0, len(paths))}
	for i, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return thread.Thread{}, err
		}
		eml, err := ParseEML(f)
		_ = f.Close()
		if err != nil {
			return thread.Thread{}, fmt.Errorf("%s: %w", path, err)
		}
		if i == 0 {
			t.Subject = BaseSubject(eml.Subject)
		}
		t.Messages = append(t.Messages, eml.Message)
	}
	return t, nil
}

func emlDate(h mail.Header) string {
	raw := strings.TrimSpace(h.Get("Date"))
	if raw == "" {
		return ""
	}
	if ts, err := h.Date(); err == nil && !ts.IsZero() {
		return ts.Format(time.RFC3339)
	}
	return raw
}

func addresses(h mail.Header, key string) []string {
	list, err := h.AddressList(key)
	if err != nil || len(list) == 0 {
		if raw := strings.TrimSpace(h.Get(key)); raw != "" {
			return []string{raw}
		}
		return []string{}
	}
	out := make([]string, 0, len(list))
	for _, addr := range list {
		out = append(out, addr.Address)
	}
	return out
}

func firstAddress(h mail.Header, key string) string {
	list := addresses(h, key)
	if len(list) == 0 {
		return ""
	}
	return list[0]
}
