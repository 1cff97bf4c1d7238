package scaffold

import (
	"errors"

	"github.com/dstack-labs/create-dstack-app/internal/failure"
	"github.com/dstack-labs/create-dstack-app/internal/prompt"
	"github.com/dstack-labs/create-dstack-app/internal/template"
)

// DefaultProjectName is offered when the user just presses enter.
const DefaultProjectName = "my-dstack-app"

// Answers are the user's replies to the four scaffold questions.
type Answers struct {
	ProjectName         string
	Template            template.Choice
	InstallDependencies bool
	InitializeGit       bool
}

// Questions returns the scaffold questions in the order they are asked.
// validate checks the project name reply.
func Questions(validate func(string) error) []prompt.Question {
	choices := make([]string, 0, len(template.Choices()))
	for _, c := range template.Choices() {
		choices = append(choices, string(c))
	}

	return []prompt.Question{
		{
			Name:     "projectName",
			Message:  "What is your project name?:",
			Kind:     prompt.Input,
			Default:  DefaultProjectName,
			Validate: validate,
		},
		{
			Name:    "projectTemplateChoice",
			Message: "Project template:",
			Kind:    prompt.Select,
			Choices: choices,
			Default: string(template.Starter),
		},
		{
			Name:    "installDependencies",
			Message: "Install dependencies (npm install)?",
			Kind:    prompt.Confirm,
			Default: "true",
		},
		{
			Name:    "initializeGit",
			Message: "Initialize a Git repository?",
			Kind:    prompt.Confirm,
			Default: "true",
		},
	}
}

// Collect asks every question through asker and assembles the answers.
// Closing the input mid-way yields an Aborted failure.
func Collect(asker prompt.Asker, validate func(string) error) (Answers, error) {
	questions := Questions(validate)
	replies := make([]string, len(questions))
	for i, q := range questions {
		reply, err := asker.Ask(q)
		if err != nil {
			if errors.Is(err, prompt.ErrAborted) {
				return Answers{}, failure.Wrap(failure.Aborted, "Setup cancelled", err)
			}
			return Answers{}, err
		}
		replies[i] = reply
	}

	return Answers{
		ProjectName:         replies[0],
		Template:            template.Choice(replies[1]),
		InstallDependencies: prompt.Bool(replies[2]),
		InitializeGit:       prompt.Bool(replies[3]),
	}, nil
}
