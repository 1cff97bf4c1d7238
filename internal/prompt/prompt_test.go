package prompt

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

var errTaken = errors.New("name taken")

func nameQuestion() Question {
	return Question{
		Name:    "projectName",
		Message: "What is your project name?:",
		Kind:    Input,
		Default: "my-dstack-app",
		Validate: func(s string) error {
			if strings.TrimSpace(s) == "taken" {
				return errTaken
			}
			return nil
		},
	}
}

func templateQuestion() Question {
	return Question{
		Name:    "projectTemplateChoice",
		Message: "Project template:",
		Kind:    Select,
		Choices: []string{"Starter template", "None"},
		Default: "Starter template",
	}
}

func confirmQuestion(def string) Question {
	return Question{Name: "installDependencies", Message: "Install dependencies (npm install)?", Kind: Confirm, Default: def}
}

func TestTerminal_Input(t *testing.T) {
	var out bytes.Buffer
	term := NewTerminal(strings.NewReader("cool-app\n"), &out)

	got, err := term.Ask(nameQuestion())
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if got != "cool-app" {
		t.Errorf("reply = %q, want %q", got, "cool-app")
	}
	if !strings.Contains(out.String(), "What is your project name?: (my-dstack-app)") {
		t.Errorf("prompt not shown with default: %q", out.String())
	}
}

func TestTerminal_InputDefault(t *testing.T) {
	var out bytes.Buffer
	term := NewTerminal(strings.NewReader("\n"), &out)

	got, err := term.Ask(nameQuestion())
	if err != nil {
		t.Fatal(err)
	}
	if got != "my-dstack-app" {
		t.Errorf("reply = %q, want default", got)
	}
}

func TestTerminal_InputRepromptsOnValidationFailure(t *testing.T) {
	var out bytes.Buffer
	term := NewTerminal(strings.NewReader("taken\nfree\n"), &out)

	got, err := term.Ask(nameQuestion())
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if got != "free" {
		t.Errorf("reply = %q, want %q", got, "free")
	}
	if !strings.Contains(out.String(), ">> name taken") {
		t.Errorf("validation message not shown: %q", out.String())
	}
	if strings.Count(out.String(), "What is your project name?") != 2 {
		t.Errorf("expected the question twice: %q", out.String())
	}
}

func TestTerminal_Select(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1\n", "Starter template"},
		{"2\n", "None"},
		{"\n", "Starter template"},
		{"none\n", "None"},
		{"9\n2\n", "None"},
		{"abc\n1\n", "Starter template"},
	}

	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.input), func(t *testing.T) {
			var out bytes.Buffer
			term := NewTerminal(strings.NewReader(tt.input), &out)
			got, err := term.Ask(templateQuestion())
			if err != nil {
				t.Fatalf("Ask: %v", err)
			}
			if got != tt.want {
				t.Errorf("reply = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTerminal_SelectShowsMenu(t *testing.T) {
	var out bytes.Buffer
	term := NewTerminal(strings.NewReader("2\n"), &out)
	if _, err := term.Ask(templateQuestion()); err != nil {
		t.Fatal(err)
	}
	for _, s := range []string{"1) Starter template", "2) None", "Enter number [1-2]"} {
		if !strings.Contains(out.String(), s) {
			t.Errorf("menu missing %q: %q", s, out.String())
		}
	}
}

func TestTerminal_Confirm(t *testing.T) {
	tests := []struct {
		input string
		def   string
		want  string
	}{
		{"y\n", "true", "true"},
		{"YES\n", "false", "true"},
		{"n\n", "true", "false"},
		{"\n", "true", "true"},
		{"\n", "false", "false"},
		{"maybe\nno\n", "true", "false"},
	}

	for _, tt := range tests {
		var out bytes.Buffer
		term := NewTerminal(strings.NewReader(tt.input), &out)
		got, err := term.Ask(confirmQuestion(tt.def))
		if err != nil {
			t.Fatalf("Ask(%q): %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("Ask(%q, default %s) = %q, want %q", tt.input, tt.def, got, tt.want)
		}
	}
}

func TestTerminal_EOFAborts(t *testing.T) {
	var out bytes.Buffer
	term := NewTerminal(strings.NewReader(""), &out)

	if _, err := term.Ask(nameQuestion()); !errors.Is(err, ErrAborted) {
		t.Errorf("expected ErrAborted, got %v", err)
	}
}

func TestTerminal_FinalLineWithoutNewline(t *testing.T) {
	var out bytes.Buffer
	term := NewTerminal(strings.NewReader("last-app"), &out)

	got, err := term.Ask(nameQuestion())
	if err != nil {
		t.Fatal(err)
	}
	if got != "last-app" {
		t.Errorf("reply = %q", got)
	}
}

func TestScripted(t *testing.T) {
	s := NewScripted("my-app", "2", "n", "")

	name, err := s.Ask(nameQuestion())
	if err != nil || name != "my-app" {
		t.Fatalf("name = %q, %v", name, err)
	}
	choice, err := s.Ask(templateQuestion())
	if err != nil || choice != "None" {
		t.Fatalf("choice = %q, %v", choice, err)
	}
	install, err := s.Ask(confirmQuestion("true"))
	if err != nil || install != "false" {
		t.Fatalf("install = %q, %v", install, err)
	}
	git, err := s.Ask(confirmQuestion("true"))
	if err != nil || git != "true" {
		t.Fatalf("git = %q, %v", git, err)
	}

	if len(s.Asked()) != 4 {
		t.Errorf("Asked() = %d questions, want 4", len(s.Asked()))
	}

	if _, err := s.Ask(nameQuestion()); !errors.Is(err, ErrAborted) {
		t.Errorf("exhausted script should abort, got %v", err)
	}
}

func TestScripted_ValidationError(t *testing.T) {
	s := NewScripted("taken")
	_, err := s.Ask(nameQuestion())
	if !errors.Is(err, errTaken) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestAskerFunc(t *testing.T) {
	var a Asker = AskerFunc(func(q Question) (string, error) { return q.Default, nil })
	got, err := a.Ask(Question{Default: "x"})
	if err != nil || got != "x" {
		t.Errorf("AskerFunc returned %q, %v", got, err)
	}
}

func TestBool(t *testing.T) {
	if !Bool("true") || Bool("false") || Bool("") || Bool("garbage") {
		t.Error("Bool parsed unexpectedly")
	}
}
