// Package classify runs a raw thread through normalization, ordering,
// identification and labelling.
package classify

import (
	"github.com/rs/zerolog"

	"github.com/avivsinai/threadlabel/internal/rules"
	"github.com/avivsinai/threadlabel/internal/thread"
)

// Result is the output object for one thread.
type Result struct {
	ThreadID string            `json:"thread_id"`
	Label    rules.Label       `json:"label"`
	Explain  rules.Explanation `json:"explain,omitempty"`
}

// Classifier is safe for concurrent use.
type Classifier struct {
	engine  *rules.Engine
	layouts []string
	log     zerolog.Logger
	explain bool
}

type Option func(*Classifier)

// WithLayouts adds timestamp layouts tried after thread.DefaultLayouts.
func WithLayouts(layouts ...string) Option {
	return func(c *Classifier) {
		c.layouts = append(c.layouts, layouts...)
	}
}

func WithLogger(log zerolog.Logger) Option {
	return func(c *Classifier) {
		c.log = log
	}
}

// WithExplain attaches the rule behind each label value to every Result.
func WithExplain(on bool) Option {
	return func(c *Classifier) {
		c.explain = on
	}
}

func New(engine *rules.Engine, opts ...Option) *Classifier {
	c := &Classifier{engine: engine, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classify normalizes raw (the value under the request's "thread" key),
// sorts it and labels it. The only error is a *thread.ShapeError.
func (c *Classifier) Classify(raw any) (Result, error) {
	t, err := thread.Normalize(raw)
	if err != nil {
		return Result{}, err
	}
	return c.ClassifyThread(t), nil
}

// ClassifyThread labels an already normalized thread.
func (c *Classifier) ClassifyThread(t thread.Thread) Result {
	if idx := thread.Unparsed(t, c.layouts...); len(idx) > 0 {
		c.log.Debug().Ints("messages", idx).Msg("unparseable timestamps sorted first")
	}
	sorted := thread.Sort(t, c.layouts...)

	res := Result{ThreadID: thread.ID(sorted)}
	if c.explain {
		res.Label, res.Explain = c.engine.Explain(sorted)
	} else {
		res.Label = c.engine.Classify(sorted)
	}

	c.log.Debug().
		Str("thread_id", res.ThreadID).
		Int("messages", len(sorted.Messages)).
		Str("request_type", res.Label.RequestType).
		Str("urgency", res.Label.Urgency).
		Str("thread_state", res.Label.ThreadState).
		Str("scheduling", res.Label.Scheduling).
		Strs("attachments", res.Label.Attachments).
		Str("tone", res.Label.Tone).
		Msg("classified thread")
	return res
}
