package classify

import (
	"bytes"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avivsinai/threadlabel/internal/rules"
	"github.com/avivsinai/threadlabel/internal/thread"
)

func msg(ts, from, body string) map[string]any {
	return map[string]any{"timestamp": ts, "from": from, "to": []any{"team@ghost.io"}, "body": body}
}

// projectGhost is delivered out of order on purpose.
func projectGhost() map[string]any {
	return map[string]any{
		"subject": "Project Ghost",
		"messages": []any{
			msg("1999-12-15 09:40", "dana@ghost.io", "Legal has the draft. Thanks for pulling this together."),
			msg("1999-12-15 07:08", "lee@ghost.io", "Team, can we close on Thursday at 2pm? We need the numbers today."),
			msg("1999-12-15 10:22", "lee@ghost.io", "I forwarded the documents to Mark this morning. Thanks!"),
			msg("1999-12-15 08:15", "dana@ghost.io", "I will check with legal and get back to you."),
		},
	}
}

func TestClassifyEndToEnd(t *testing.T) {
	c := New(rules.MustNewEngine())
	res, err := c.Classify(projectGhost())
	require.NoError(t, err)

	// sha1("Project Ghost" + "1999-12-15 07:08" + "1999-12-15 10:22"). The
	// thread is rebuilt from a published sample whose input file is lost, so
	// only the labels match the sample; DESIGN.md has the details.
	assert.Equal(t, "42fec3cd54b49e487682e0b514fd9d8dd848b76e", res.ThreadID)
	assert.Equal(t, rules.Label{
		RequestType: rules.RequestSchedule,
		Urgency:     rules.UrgencyUrgent,
		ThreadState: rules.StateFollowUp,
		Scheduling:  rules.ScheduleProposed,
		Attachments: []string{rules.AttachmentAttached},
		Tone:        rules.TonePositive,
	}, res.Label)
	assert.Nil(t, res.Explain)
}

func TestClassifyOrderIndependent(t *testing.T) {
	c := New(rules.MustNewEngine())
	want, err := c.Classify(projectGhost())
	require.NoError(t, err)

	reversed := projectGhost()
	list := reversed["messages"].([]any)
	for i, j := 0, len(list)-1; i < j; i, j = i+1, j-1 {
		list[i], list[j] = list[j], list[i]
	}
	got, err := c.Classify(reversed)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestClassifyEmpty(t *testing.T) {
	c := New(rules.MustNewEngine())
	for _, raw := range []any{nil, map[string]any{}, map[string]any{"subject": nil, "messages": []any{}}} {
		res, err := c.Classify(raw)
		require.NoError(t, err)
		assert.Equal(t, "da39a3ee5e6b4b0d3255bfef95601890afd80709", res.ThreadID)
		assert.Equal(t, rules.DefaultLabel(), res.Label)
	}
}

func TestClassifySubjectOnly(t *testing.T) {
	c := New(rules.MustNewEngine())
	res, err := c.Classify(map[string]any{"subject": "Hello"})
	require.NoError(t, err)
	assert.Equal(t, "f7ff9e8b7bb2e09b70935a5d785e0cc5d9d0abf0", res.ThreadID)
}

func TestClassifyShapeError(t *testing.T) {
	c := New(rules.MustNewEngine())
	_, err := c.Classify(map[string]any{"messages": []any{map[string]any{"to": 42.0}}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, thread.ErrInputShape))

	var shape *thread.ShapeError
	require.ErrorAs(t, err, &shape)
	assert.Equal(t, "thread.messages[0].to", shape.Path)
}

func TestClassifyExplain(t *testing.T) {
	c := New(rules.MustNewEngine(), WithExplain(true))
	res, err := c.Classify(projectGhost())
	require.NoError(t, err)
	require.Len(t, res.Explain, len(rules.Dimensions))

	sched := res.Explain[rules.DimScheduling][0]
	assert.Equal(t, rules.ScheduleProposed, sched.Value)
	assert.Equal(t, "message[0]", sched.Source)
	assert.Equal(t, "message[3]", res.Explain[rules.DimTone][0].Source)
}

func TestClassifyExtraLayouts(t *testing.T) {
	raw := map[string]any{"messages": []any{
		msg("15/12/1999 10:00", "a", "Issue resolved."),
		msg("15/12/1999 09:00", "b", "Login fails again"),
	}}

	plain := New(rules.MustNewEngine())
	res, err := plain.Classify(raw)
	require.NoError(t, err)
	assert.Equal(t, rules.StateFollowUp, res.Label.ThreadState)

	withLayout := New(rules.MustNewEngine(), WithLayouts("02/01/2006 15:04"))
	res, err = withLayout.Classify(raw)
	require.NoError(t, err)
	assert.Equal(t, rules.StateResolved, res.Label.ThreadState)
}

func TestClassifyLogsUnparsedTimestamps(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf).Level(zerolog.DebugLevel)
	c := New(rules.MustNewEngine(), WithLogger(log))

	_, err := c.Classify(map[string]any{"messages": []any{msg("yesterday", "a", "hi")}})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "unparseable timestamps sorted first")
	assert.Contains(t, buf.String(), `"thread_id"`)
}
