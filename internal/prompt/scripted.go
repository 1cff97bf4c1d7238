package prompt

import (
	"fmt"
	"strings"
)

// Scripted replays fixed replies in order, one per question, without any
// terminal. An empty reply takes the question's default. Replies go through
// the same parsing and validation as a Terminal, but a rejected reply is
// returned as an error instead of being asked again.
type Scripted struct {
	replies []string
	asked   []Question
}

// NewScripted returns a Scripted asker that answers with replies.
func NewScripted(replies ...string) *Scripted {
	return &Scripted{replies: replies}
}

// Ask implements Asker.
func (s *Scripted) Ask(q Question) (string, error) {
	s.asked = append(s.asked, q)
	if len(s.replies) == 0 {
		return "", ErrAborted
	}
	reply := s.replies[0]
	s.replies = s.replies[1:]

	switch q.Kind {
	case Select:
		return parseSelect(reply, q.Choices, q.Default)
	case Confirm:
		return parseConfirm(reply, q.Default)
	}

	if strings.TrimSpace(reply) == "" {
		reply = q.Default
	}
	if q.Validate != nil {
		if err := q.Validate(reply); err != nil {
			return "", fmt.Errorf("%s: %w", q.Name, err)
		}
	}
	return reply, nil
}

// Asked returns the questions asked so far.
func (s *Scripted) Asked() []Question {
	return s.asked
}
