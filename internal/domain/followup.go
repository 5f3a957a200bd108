package domain

import (
	"errors"
	"strings"
)

var (
	// ErrNoQuestions is returned when a follow-up session carries no questions.
	ErrNoQuestions = errors.New("follow-up session has no questions")

	// ErrCannotAdvance is returned by Next when the current answer is empty
	// or the cursor is on the last question.
	ErrCannotAdvance = errors.New("cannot move to next question")

	// ErrCannotGoBack is returned by Previous on the first question.
	ErrCannotGoBack = errors.New("already on the first question")
)

// FollowupSession is a server-issued questionnaire being answered one
// question at a time.
type FollowupSession struct {
	SessionID string
	Questions []string
	Answers   []string

	index int
}

// NewFollowupSession creates a session positioned on the first question
// with every answer empty.
func NewFollowupSession(sessionID string, questions []string) (*FollowupSession, error) {
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}
	qs := make([]string, len(questions))
	copy(qs, questions)
	return &FollowupSession{
		SessionID: sessionID,
		Questions: qs,
		Answers:   make([]string, len(qs)),
	}, nil
}

// Len returns the number of questions.
func (s *FollowupSession) Len() int { return len(s.Questions) }

// Index returns the zero-based position of the current question.
func (s *FollowupSession) Index() int { return s.index }

// Question returns the current question text.
func (s *FollowupSession) Question() string { return s.Questions[s.index] }

// Answer returns the current answer text.
func (s *FollowupSession) Answer() string { return s.Answers[s.index] }

// SetAnswer stores the answer for the current question.
func (s *FollowupSession) SetAnswer(v string) { s.Answers[s.index] = v }

// IsLast reports whether the cursor is on the final question.
func (s *FollowupSession) IsLast() bool { return s.index == len(s.Questions)-1 }

func (s *FollowupSession) currentAnswered() bool {
	return strings.TrimSpace(s.Answers[s.index]) != ""
}

// CanNext reports whether Next is allowed.
func (s *FollowupSession) CanNext() bool {
	return !s.IsLast() && s.currentAnswered()
}

// CanPrevious reports whether Previous is allowed.
func (s *FollowupSession) CanPrevious() bool { return s.index > 0 }

// CanSubmit reports whether the final question is showing and answered.
func (s *FollowupSession) CanSubmit() bool {
	return s.IsLast() && s.currentAnswered()
}

// Next moves to the following question.
func (s *FollowupSession) Next() error {
	if !s.CanNext() {
		return ErrCannotAdvance
	}
	s.index++
	return nil
}

// Previous moves back one question. The answer being left is not checked.
func (s *FollowupSession) Previous() error {
	if !s.CanPrevious() {
		return ErrCannotGoBack
	}
	s.index--
	return nil
}

// Validate checks that every answer is non-empty.
func (s *FollowupSession) Validate() error {
	for _, a := range s.Answers {
		if strings.TrimSpace(a) == "" {
			return invalid("answers", MsgAnswerAll)
		}
	}
	return nil
}

// Progress returns (index+1)/len as a fraction in (0, 1].
func (s *FollowupSession) Progress() float64 {
	return float64(s.index+1) / float64(len(s.Questions))
}

// Discard drops every answer.
func (s *FollowupSession) Discard() {
	for i := range s.Answers {
		s.Answers[i] = ""
	}
	s.index = 0
}

// CompleteFollowupPayload is the JSON body of PUT /api/followup/{id}/complete.
type CompleteFollowupPayload struct {
	UserID  string   `json:"user_id"`
	Answers []string `json:"answers"`
}
