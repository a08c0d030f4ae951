package gh

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"emperror.dev/errors"
)

// RepositorySummary is the read-only repository record as returned by the
// list endpoint. It is never mutated locally; updates go through the
// dedicated write calls below.
type RepositorySummary struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	FullName      string    `json:"full_name"`
	Owner         Owner     `json:"owner"`
	Description   string    `json:"description"`
	Homepage      string    `json:"homepage"`
	Topics        []string  `json:"topics"`
	Language      string    `json:"language"`
	Stargazers    int       `json:"stargazers_count"`
	Forks         int       `json:"forks_count"`
	Private       bool      `json:"private"`
	PushedAt      time.Time `json:"pushed_at"`
	DefaultBranch string    `json:"default_branch"`
}

type Owner struct {
	Login string `json:"login"`
}

const reposPerPage = 100

// ListRepositories returns every repository owned by (or accessible to) the
// authenticated user, most recently updated first. It pages through the list
// endpoint until a page comes back empty.
func (c *Client) ListRepositories(ctx context.Context) ([]RepositorySummary, error) {
	var all []RepositorySummary
	for page := 1; ; page++ {
		endpoint := fmt.Sprintf("/user/repos?per_page=%d&page=%d&sort=updated", reposPerPage, page)
		var repos []RepositorySummary
		if err := c.rest(ctx, "GET", endpoint, nil, &repos); err != nil {
			return nil, errors.Wrap(err, "unable to list repositories")
		}
		if len(repos) == 0 {
			break
		}
		all = append(all, repos...)
	}
	return all, nil
}

// UpdateRepositoryOpts carries the mutable repository attributes. Nil fields
// are left untouched on the server.
type UpdateRepositoryOpts struct {
	Description *string `json:"description,omitempty"`
	Homepage    *string `json:"homepage,omitempty"`
}

// UpdateRepository updates the repository's top-level attributes
// (description, homepage).
func (c *Client) UpdateRepository(ctx context.Context, owner string, repo string, opts UpdateRepositoryOpts) error {
	endpoint := fmt.Sprintf("/repos/%s/%s", url.PathEscape(owner), url.PathEscape(repo))
	if err := c.rest(ctx, "PATCH", endpoint, opts, nil); err != nil {
		return errors.Wrap(err, "unable to update repository attributes")
	}
	return nil
}

// ReplaceAllTopics replaces the repository's entire topic set with the given
// list. Prior topics are discarded, not merged.
func (c *Client) ReplaceAllTopics(ctx context.Context, owner string, repo string, topics []string) error {
	if topics == nil {
		// The endpoint rejects a null names array.
		topics = []string{}
	}
	endpoint := fmt.Sprintf("/repos/%s/%s/topics", url.PathEscape(owner), url.PathEscape(repo))
	body := struct {
		Names []string `json:"names"`
	}{Names: topics}
	if err := c.rest(ctx, "PUT", endpoint, body, nil); err != nil {
		return errors.Wrap(err, "unable to replace repository topics")
	}
	return nil
}
