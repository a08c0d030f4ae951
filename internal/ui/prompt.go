package ui

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/erikgeiser/promptkit/confirmation"
	"github.com/erikgeiser/promptkit/selection"
	"github.com/erikgeiser/promptkit/textinput"
	"github.com/weehong/github-repository-metadata-generator/internal/gh"
	"github.com/weehong/github-repository-metadata-generator/internal/utils/colors"
)

// SecretInput prompts for a secret with masked input. Input must be
// non-empty (promptkit's default validation).
func SecretInput(prompt string) (string, error) {
	input := textinput.New(prompt)
	input.Hidden = true
	return input.RunPrompt()
}

// Confirm asks a yes/no question. def is the answer selected when the user
// just hits enter.
func Confirm(prompt string, def bool) (bool, error) {
	initial := confirmation.No
	if def {
		initial = confirmation.Yes
	}
	return confirmation.New(prompt, initial).RunPrompt()
}

type repoChoice struct {
	repo gh.RepositorySummary
}

func (c repoChoice) String() string {
	parts := []string{colors.Bold(c.repo.Name)}
	if c.repo.Private {
		parts = append(parts, colors.Warning("(private)"))
	}
	if c.repo.Language != "" {
		parts = append(parts, colors.UserInput(c.repo.Language))
	}
	parts = append(parts, colors.Faint(fmt.Sprintf(
		"★ %s, updated %s", humanize.Comma(int64(c.repo.Stargazers)), humanize.Time(c.repo.PushedAt),
	)))
	if c.repo.Description != "" {
		parts = append(parts, colors.Faint("— "+c.repo.Description))
	}
	return strings.Join(parts, " ")
}

// SelectRepository presents a searchable list over the given repositories.
// The filter matches a case-insensitive substring against name, language,
// and description; an empty query matches everything.
func SelectRepository(repos []gh.RepositorySummary) (gh.RepositorySummary, error) {
	choices := make([]repoChoice, 0, len(repos))
	for _, repo := range repos {
		choices = append(choices, repoChoice{repo})
	}

	sel := selection.New("Select a repository", choices)
	sel.PageSize = 15
	sel.FilterPlaceholder = "type to filter by name, language, or description"
	sel.Filter = func(filter string, choice *selection.Choice[repoChoice]) bool {
		query := strings.ToLower(filter)
		repo := choice.Value.repo
		return strings.Contains(strings.ToLower(repo.Name), query) ||
			strings.Contains(strings.ToLower(repo.Language), query) ||
			strings.Contains(strings.ToLower(repo.Description), query)
	}

	choice, err := sel.RunPrompt()
	if err != nil {
		return gh.RepositorySummary{}, err
	}
	return choice.repo, nil
}
