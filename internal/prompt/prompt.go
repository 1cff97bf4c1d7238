package prompt

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrAborted is returned when the user closes the input before answering.
var ErrAborted = errors.New("prompt aborted")

// Kind selects how a question is asked.
type Kind int

const (
	// Input asks for free text.
	Input Kind = iota
	// Select asks the user to pick one of Choices.
	Select
	// Confirm asks a yes/no question. Replies are "true" or "false".
	Confirm
)

// Question describes one prompt.
type Question struct {
	Name    string
	Message string
	Kind    Kind
	Default string
	Choices []string

	// Validate, when set, checks an Input reply. A failing reply is shown the
	// error and asked again.
	Validate func(string) error
}

// Asker answers questions. Implementations decide where answers come from:
// a terminal, a script, or a test table.
type Asker interface {
	Ask(q Question) (string, error)
}

// AskerFunc adapts a function to the Asker interface.
type AskerFunc func(q Question) (string, error)

// Ask calls f(q).
func (f AskerFunc) Ask(q Question) (string, error) { return f(q) }

// Bool interprets a Confirm reply.
func Bool(reply string) bool {
	b, _ := strconv.ParseBool(reply)
	return b
}

// parseConfirm maps a typed yes/no reply to "true"/"false". An empty reply
// takes def.
func parseConfirm(reply, def string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(reply)) {
	case "":
		if Bool(def) {
			return "true", nil
		}
		return "false", nil
	case "y", "yes", "true":
		return "true", nil
	case "n", "no", "false":
		return "false", nil
	}
	return "", fmt.Errorf("please answer y or n")
}

// parseSelect maps a typed reply to one of choices. The reply may be the
// 1-based number shown in the menu or the choice text itself; an empty reply
// takes def.
func parseSelect(reply string, choices []string, def string) (string, error) {
	reply = strings.TrimSpace(reply)
	if reply == "" && def != "" {
		return def, nil
	}
	if n, err := strconv.Atoi(reply); err == nil {
		if n >= 1 && n <= len(choices) {
			return choices[n-1], nil
		}
		return "", fmt.Errorf("invalid selection %q: choose 1-%d", reply, len(choices))
	}
	for _, c := range choices {
		if strings.EqualFold(c, reply) {
			return c, nil
		}
	}
	return "", fmt.Errorf("invalid selection %q: choose 1-%d", reply, len(choices))
}
