package rules

// Request types.
const (
	RequestEdit     = "EDIT/REVISE"
	RequestDocs     = "PROVIDE_DOCS"
	RequestReview   = "REVIEW/APPROVE"
	RequestSchedule = "SCHEDULE/MEET"
	RequestInfoOnly = "INFO_ONLY"
)

// Urgency tiers.
const (
	UrgencyUrgent   = "URGENT-24H"
	UrgencyStandard = "STD-48H"
	UrgencyLow      = "LOW-120H"
)

// Thread states.
const (
	StateResolved = "RESOLVED"
	StateFollowUp = "FOLLOW-UP"
	StateNew      = "NEW"
)

// Scheduling outcomes.
const (
	ScheduleConfirmed  = "CONFIRMED_TIME"
	ScheduleReschedule = "RESCHEDULE"
	ScheduleProposed   = "PROPOSED_TIME"
	ScheduleNone       = "NO_MEETING"
)

// Attachment outcomes.
const (
	AttachmentAttached  = "ATTACHED"
	AttachmentExpecting = "EXPECTING_ATTACHMENT"
	AttachmentNone      = "NONE_MENTIONED"
)

// Tones.
const (
	TonePositive   = "POSITIVE"
	ToneNeutral    = "NEUTRAL"
	ToneFrustrated = "FRUSTRATED"
)

// Label is the classification of one thread. Field order is the wire order.
type Label struct {
	RequestType string   `json:"request_type"`
	Urgency     string   `json:"urgency"`
	ThreadState string   `json:"thread_state"`
	Scheduling  string   `json:"scheduling"`
	Attachments []string `json:"attachments"`
	Tone        string   `json:"tone"`
}

// DefaultLabel is the label of a thread no rule matches.
func DefaultLabel() Label {
	return Label{
		RequestType: RequestInfoOnly,
		Urgency:     UrgencyStandard,
		ThreadState: StateNew,
		Scheduling:  ScheduleNone,
		Attachments: []string{AttachmentNone},
		Tone:        ToneNeutral,
	}
}

// Match sources that are not a message or the subject.
const (
	SourceDefault = "default"
	SourceSubject = "subject"
)

// Match records why a dimension got its value.
type Match struct {
	Value   string   `json:"value"`
	Rank    int      `json:"rank"`
	Lang    Language `json:"lang,omitempty"`
	Pattern string   `json:"pattern,omitempty"`
	Matched string   `json:"matched,omitempty"`
	Source  string   `json:"source"`
	Custom  bool     `json:"custom,omitempty"`
}

// Explanation holds the matches behind each dimension of a Label.
// Attachments may carry more than one match; other dimensions carry one.
type Explanation map[Dimension][]Match
