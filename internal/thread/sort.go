package thread

import (
	"sort"
	"strings"
	"time"
)

// DefaultLayouts are the timestamp layouts accepted by Sort, tried in order.
var DefaultLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05Z07:00",
	time.RFC1123Z,
	time.RFC1123,
	time.RFC822Z,
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"2 Jan 2006 15:04:05 -0700",
	"2006-01-02",
}

// ParseTimestamp parses raw against DefaultLayouts followed by extra.
// A trailing parenthesised zone comment, as in "-0800 (PST)", is ignored.
func ParseTimestamp(raw string, extra ...string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}
	if i := strings.LastIndex(s, " ("); i > 0 && strings.HasSuffix(s, ")") {
		s = strings.TrimSpace(s[:i])
	}
	for _, layout := range DefaultLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	for _, layout := range extra {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// Sort returns a copy of t with messages in ascending timestamp order.
// Unparseable timestamps sort first; ties keep their input order.
func Sort(t Thread, extraLayouts ...string) Thread {
	type keyed struct {
		msg    Message
		ts     time.Time
		parsed bool
	}
	items := make([]keyed, len(t.Messages))
	for i, msg := range t.Messages {
		ts, ok := ParseTimestamp(msg.Timestamp, extraLayouts...)
		items[i] = keyed{msg: msg, ts: ts, parsed: ok}
	}
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if !a.parsed || !b.parsed {
			return !a.parsed && b.parsed
		}
		return a.ts.Before(b.ts)
	})

	out := Thread{Subject: t.Subject, Messages: make([]Message, len(items))}
	for i, item := range items {
		out.Messages[i] = item.msg
	}
	return out
}

// Unparsed returns the indexes of messages whose timestamp Sort could not parse.
func Unparsed(t Thread, extraLayouts ...string) []int {
	var out []int
	for i, msg := range t.Messages {
		if _, ok := ParseTimestamp(msg.Timestamp, extraLayouts...); !ok {
			out = append(out, i)
		}
	}
	return out
}
