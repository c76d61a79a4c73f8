package rules

import (
	"fmt"

	"github.com/avivsinai/threadlabel/internal/thread"
)

// toneWindow is how many trailing messages the tone fallback reads.
const toneWindow = 3

// Engine holds the compiled tables. It is never mutated after NewEngine
// returns.
type Engine struct {
	scheduling  *table
	requestType *table
	attachments *table
	urgency     *table
	tone        *table
	threadState *table
}

// NewEngine compiles the built-in tables and appends the operator rules in
// extra, each at the rank of its value.
func NewEngine(extra ...RuleSpec) (*Engine, error) {
	e := &Engine{}
	builds := []struct {
		dim      Dimension
		outcomes []outcome
		dst      **table
	}{
		{DimScheduling, schedulingTable, &e.scheduling},
		{DimRequestType, requestTypeTable, &e.requestType},
		{DimAttachments, attachmentTable, &e.attachments},
		{DimUrgency, urgencyTable, &e.urgency},
		{DimTone, toneTable, &e.tone},
		{DimThreadState, threadStateTable, &e.threadState},
	}
	for _, b := range builds {
		t, err := newTable(b.dim, b.outcomes)
		if err != nil {
			return nil, err
		}
		*b.dst = t
	}
	for _, spec := range extra {
		t := e.table(spec.Dimension)
		if t == nil {
			return nil, fmt.Errorf("rules: unknown dimension %q", spec.Dimension)
		}
		if err := t.add(spec); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// MustNewEngine is NewEngine for the built-in tables, which always compile.
func MustNewEngine() *Engine {
	e, err := NewEngine()
	if err != nil {
		panic(err)
	}
	return e
}

func (e *Engine) table(dim Dimension) *table {
	switch dim {
	case DimScheduling:
		return e.scheduling
	case DimRequestType:
		return e.requestType
	case DimAttachments:
		return e.attachments
	case DimUrgency:
		return e.urgency
	case DimTone:
		return e.tone
	case DimThreadState:
		return e.threadState
	default:
		return nil
	}
}

// Values returns the outcomes a rule may emit for dim, in precedence order.
func (e *Engine) Values(dim Dimension) []string {
	t := e.table(dim)
	if t == nil {
		return nil
	}
	return append([]string(nil), t.values...)
}

// RuleCount reports how many compiled rules a dimension holds.
func (e *Engine) RuleCount(dim Dimension) int {
	t := e.table(dim)
	if t == nil {
		return 0
	}
	n := 0
	for _, rank := range t.ranks {
		n += len(rank)
	}
	return n
}

// Classify labels t, whose messages must already be in chronological order.
func (e *Engine) Classify(t thread.Thread) Label {
	label, _ := e.Explain(t)
	return label
}

// Explain labels t and reports the rule behind every value.
func (e *Engine) Explain(t thread.Thread) (Label, Explanation) {
	in := newInput(t)
	exp := make(Explanation, len(Dimensions))
	label := DefaultLabel()

	sched := e.classifyScheduling(in)
	label.Scheduling = sched.Value
	exp[DimScheduling] = []Match{sched}

	req := e.classifyRequestType(in, sched)
	label.RequestType = req.Value
	exp[DimRequestType] = []Match{req}

	att := e.classifyAttachments(in)
	label.Attachments = make([]string, len(att))
	for i, m := range att {
		label.Attachments[i] = m.Value
	}
	exp[DimAttachments] = att

	urg := e.classifyUrgency(in)
	label.Urgency = urg.Value
	exp[DimUrgency] = []Match{urg}

	tone := e.classifyTone(in)
	label.Tone = tone.Value
	exp[DimTone] = []Match{tone}

	state := e.classifyThreadState(in)
	label.ThreadState = state.Value
	exp[DimThreadState] = []Match{state}

	return label, exp
}

// input is the per-call folded view of a thread.
type input struct {
	bodies      []text
	subject     text
	attachments [][]string
}

func newInput(t thread.Thread) input {
	in := input{
		bodies:      make([]text, len(t.Messages)),
		subject:     text{source: SourceSubject, folded: Fold(t.Subject)},
		attachments: make([][]string, len(t.Messages)),
	}
	for i, msg := range t.Messages {
		in.bodies[i] = text{source: messageSource(i), folded: Fold(msg.Body)}
		in.attachments[i] = msg.Attachments
	}
	return in
}

func messageSource(i int) string {
	return fmt.Sprintf("message[%d]", i)
}

// withSubject is the bodies in chronological order followed by the subject.
func (in input) withSubject() []text {
	out := make([]text, 0, len(in.bodies)+1)
	out = append(out, in.bodies...)
	if in.subject.folded != "" {
		out = append(out, in.subject)
	}
	return out
}

// tail is up to n trailing bodies, most recent first.
func (in input) tail(n int) []text {
	if n > len(in.bodies) {
		n = len(in.bodies)
	}
	out := make([]text, 0, n)
	for i := len(in.bodies) - 1; i >= len(in.bodies)-n; i-- {
		out = append(out, in.bodies[i])
	}
	return out
}

func (e *Engine) classifyScheduling(in input) Match {
	if m, ok := e.scheduling.first(in.withSubject()); ok {
		return m
	}
	return e.scheduling.fallback(ScheduleNone)
}

// classifyRequestType treats any scheduling outcome as meeting intent at the
// SCHEDULE/MEET rank, below the explicit request categories.
func (e *Engine) classifyRequestType(in input, sched Match) Match {
	texts := in.withSubject()
	meetRank, _ := e.requestType.rankOf(RequestSchedule)
	for rank, rules := range e.requestType.ranks {
		if m, ok := e.requestType.matchRank(rank, rules, texts); ok {
			return m
		}
		if rank == meetRank && sched.Value != ScheduleNone {
			return Match{
				Value:   RequestSchedule,
				Rank:    rank,
				Matched: sched.Value,
				Source:  string(DimScheduling),
			}
		}
	}
	return e.requestType.fallback(RequestInfoOnly)
}

// classifyAttachments reports every outcome found, in the order first seen
// while walking messages chronologically, then the subject.
func (e *Engine) classifyAttachments(in input) []Match {
	var out []Match
	seen := make(map[string]bool, len(e.attachments.values))
	record := func(m Match) {
		if seen[m.Value] {
			return
		}
		seen[m.Value] = true
		out = append(out, m)
	}

	attachedRank, _ := e.attachments.rankOf(AttachmentAttached)
	texts := in.withSubject()
	for i, txt := range texts {
		if i < len(in.attachments) && len(in.attachments[i]) > 0 {
			record(Match{
				Value:   AttachmentAttached,
				Rank:    attachedRank,
				Matched: in.attachments[i][0],
				Source:  txt.source + ".attachments",
			})
		}
		for _, value := range e.attachments.values {
			if seen[value] {
				continue
			}
			if m, ok := e.attachments.at(value, []text{txt}); ok {
				record(m)
			}
		}
	}
	if len(out) == 0 {
		return []Match{e.attachments.fallback(AttachmentNone)}
	}
	return out
}

func (e *Engine) classifyUrgency(in input) Match {
	if m, ok := e.urgency.first(in.withSubject()); ok {
		return m
	}
	return e.urgency.fallback(UrgencyStandard)
}

// classifyTone reads the last message alone, then the last toneWindow
// messages most recent first.
func (e *Engine) classifyTone(in input) Match {
	if m, ok := e.tone.first(in.tail(1)); ok {
		return m
	}
	if m, ok := e.tone.first(in.tail(toneWindow)); ok {
		return m
	}
	return e.tone.fallback(ToneNeutral)
}

func (e *Engine) classifyThreadState(in input) Match {
	if m, ok := e.threadState.first(in.tail(1)); ok {
		return m
	}
	if len(in.bodies) > 1 {
		return Match{
			Value:   StateFollowUp,
			Rank:    len(e.threadState.values),
			Matched: fmt.Sprintf("%d messages", len(in.bodies)),
			Source:  "messages",
		}
	}
	return e.threadState.fallback(StateNew)
}
