package game

// View identifies the single main screen the presentation layer should
// render. Transitions between views are owned by the session manager.
type View string

const (
	ViewAwaitingCredentials View = "AWAITING_CREDENTIALS"
	ViewLoading             View = "LOADING"
	ViewBrief               View = "BRIEF"
	ViewPlanning            View = "PLANNING"
	ViewRunning             View = "RUNNING"
	ViewResult              View = "RESULT"
	ViewChallenge           View = "CHALLENGE"
)

// Modal is the orthogonal overlay selector. It may only be active alongside
// the PLANNING, RUNNING and RESULT views and is cleared on every main-view
// transition.
type Modal string

const (
	ModalNone        Modal = ""
	ModalHistory     Modal = "HISTORY"
	ModalBriefDetail Modal = "BRIEF_DETAIL"
	ModalChannelInfo Modal = "CHANNEL_INFO"
)

// ValidModal reports whether m names a known overlay.
func ValidModal(m Modal) bool {
	switch m {
	case ModalHistory, ModalBriefDetail, ModalChannelInfo:
		return true
	}
	return false
}

// ModalAllowed reports whether any overlay may be shown on top of v.
func ModalAllowed(v View) bool {
	switch v {
	case ViewPlanning, ViewRunning, ViewResult:
		return true
	}
	return false
}

// Session aggregates all mutable state of one game run. It is owned by the
// session manager; the presentation layer only ever sees copies.
type Session struct {
	View  View  `json:"view"`
	Modal Modal `json:"modal"`

	Brief *Brief `json:"brief"`
	// BriefEpoch identifies the generation that produced the current Brief.
	// Asynchronous completions carry the epoch they were started under so
	// results arriving after a session reset can be discarded.
	BriefEpoch string `json:"-"`

	Allocation Allocation    `json:"allocation"`
	LastResult *MonthResult  `json:"last_result"`
	History    []MonthResult `json:"history"`
	QALog      []QAExchange  `json:"qa_log"`
	Date       Date          `json:"date"`
	Challenge  *Challenge    `json:"challenge"`
}

// NewSession returns the initial pre-credential session.
func NewSession() *Session {
	return &Session{
		View:       ViewAwaitingCredentials,
		Modal:      ModalNone,
		Allocation: NewAllocation(),
		Date:       StartDate(),
	}
}

// ResetForBrief installs a freshly generated brief and clears all per-run
// data. The caller decides whether the date restarts (new credentials) or
// is kept (manual brief regeneration).
func (s *Session) ResetForBrief(b *Brief, epoch string, keepDate bool) {
	s.Brief = b
	s.BriefEpoch = epoch
	s.Allocation = NewAllocation()
	s.LastResult = nil
	s.History = nil
	s.QALog = nil
	s.Challenge = nil
	if !keepDate {
		s.Date = StartDate()
	}
}

// FindQA returns the QA exchange with the given id, or nil when the log no
// longer contains it (e.g. after a brief replacement).
func (s *Session) FindQA(id string) *QAExchange {
	for i := range s.QALog {
		if s.QALog[i].ID == id {
			return &s.QALog[i]
		}
	}
	return nil
}

// Snapshot returns a deep copy safe to hand to the presentation layer.
func (s *Session) Snapshot() Session {
	out := *s
	if s.Brief != nil {
		b := *s.Brief
		out.Brief = &b
	}
	out.Allocation = s.Allocation.Clone()
	if s.LastResult != nil {
		r := copyMonthResult(*s.LastResult)
		out.LastResult = &r
	}
	if s.History != nil {
		out.History = make([]MonthResult, len(s.History))
		for i := range s.History {
			out.History[i] = copyMonthResult(s.History[i])
		}
	}
	if s.QALog != nil {
		out.QALog = append([]QAExchange(nil), s.QALog...)
	}
	if s.Challenge != nil {
		c := *s.Challenge
		out.Challenge = &c
	}
	return out
}

func copyMonthResult(m MonthResult) MonthResult {
	if m.Channels != nil {
		ch := make(map[Channel]*ChannelResult, len(m.Channels))
		for c, r := range m.Channels {
			if r == nil {
				// zero-spend channels keep their explicit null entry
				ch[c] = nil
				continue
			}
			rr := *r
			ch[c] = &rr
		}
		m.Channels = ch
	}
	return m
}
