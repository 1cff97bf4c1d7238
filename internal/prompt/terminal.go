package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Terminal asks questions on a line-oriented reader/writer pair, normally
// stdin and stdout. Bad replies are explained and asked again; end of input
// returns ErrAborted.
type Terminal struct {
	r *bufio.Reader
	w io.Writer
}

// NewTerminal returns a Terminal reading replies from r and writing prompts to w.
func NewTerminal(r io.Reader, w io.Writer) *Terminal {
	return &Terminal{r: bufio.NewReader(r), w: w}
}

// Ask implements Asker.
func (t *Terminal) Ask(q Question) (string, error) {
	for {
		t.show(q)

		line, err := t.readLine()
		if err != nil {
			return "", err
		}

		reply, err := t.interpret(q, line)
		if err == nil {
			return reply, nil
		}
		fmt.Fprintf(t.w, ">> %v\n", err)
	}
}

func (t *Terminal) show(q Question) {
	switch q.Kind {
	case Select:
		fmt.Fprintf(t.w, "? %s\n", q.Message)
		for i, c := range q.Choices {
			marker := " "
			if c == q.Default {
				marker = ">"
			}
			fmt.Fprintf(t.w, " %s %d) %s\n", marker, i+1, c)
		}
		fmt.Fprintf(t.w, "  Enter number [1-%d]: ", len(q.Choices))
	case Confirm:
		hint := "y/N"
		if Bool(q.Default) {
			hint = "Y/n"
		}
		fmt.Fprintf(t.w, "? %s (%s) ", q.Message, hint)
	default:
		if q.Default != "" {
			fmt.Fprintf(t.w, "? %s (%s) ", q.Message, q.Default)
		} else {
			fmt.Fprintf(t.w, "? %s ", q.Message)
		}
	}
}

func (t *Terminal) interpret(q Question, line string) (string, error) {
	switch q.Kind {
	case Select:
		return parseSelect(line, q.Choices, q.Default)
	case Confirm:
		return parseConfirm(line, q.Default)
	}

	reply := line
	if strings.TrimSpace(reply) == "" {
		reply = q.Default
	}
	if q.Validate != nil {
		if err := q.Validate(reply); err != nil {
			return "", err
		}
	}
	return reply, nil
}

// readLine returns the next line without its terminator. A final line with
// no newline is still returned; only an empty read at EOF aborts.
func (t *Terminal) readLine() (string, error) {
	line, err := t.r.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(t.w)
			return "", ErrAborted
		}
		return "", fmt.Errorf("reading reply: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
