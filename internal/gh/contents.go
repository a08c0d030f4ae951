package gh

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/url"
	"strings"

	"emperror.dev/errors"
)

// FileContents is a file fetched through the repository contents endpoint.
type FileContents struct {
	Name string
	Path string
	// SHA is the blob hash; required when overwriting the file.
	SHA  string
	Text string
}

type fileContentsJSON struct {
	Name     string `json:"name"`
	Path     string `json:"path"`
	SHA      string `json:"sha"`
	Content  string `json:"content"`
	Encoding string `json:"encoding"`
}

// GetContents fetches a single file at the given path (optionally at a
// specific ref; pass "" for the default branch). Absence is signaled by an
// error satisfying IsNotFound.
func (c *Client) GetContents(ctx context.Context, owner string, repo string, path string, ref string) (*FileContents, error) {
	endpoint := fmt.Sprintf("/repos/%s/%s/contents/%s", url.PathEscape(owner), url.PathEscape(repo), path)
	if ref != "" {
		endpoint += "?ref=" + url.QueryEscape(ref)
	}
	var raw fileContentsJSON
	if err := c.rest(ctx, "GET", endpoint, nil, &raw); err != nil {
		return nil, err
	}

	text := raw.Content
	if raw.Encoding == "base64" {
		// GitHub inserts newlines into the base64 payload.
		decoded, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(raw.Content, "\n", ""))
		if err != nil {
			return nil, errors.Wrap(err, "failed to decode file contents")
		}
		text = string(decoded)
	}
	return &FileContents{
		Name: raw.Name,
		Path: raw.Path,
		SHA:  raw.SHA,
		Text: text,
	}, nil
}

// PutContentsOpts describes a create-or-update of a single file.
type PutContentsOpts struct {
	Message string
	Content string
	// SHA must be set to the prior blob hash when the file already exists,
	// and left empty when creating it.
	SHA string
}

// PutContents creates or updates the file at path with the given text
// content (base64-encoded on the wire, as the endpoint requires).
func (c *Client) PutContents(ctx context.Context, owner string, repo string, path string, opts PutContentsOpts) error {
	endpoint := fmt.Sprintf("/repos/%s/%s/contents/%s", url.PathEscape(owner), url.PathEscape(repo), path)
	body := struct {
		Message string `json:"message"`
		Content string `json:"content"`
		SHA     string `json:"sha,omitempty"`
	}{
		Message: opts.Message,
		Content: base64.StdEncoding.EncodeToString([]byte(opts.Content)),
		SHA:     opts.SHA,
	}
	if err := c.rest(ctx, "PUT", endpoint, body, nil); err != nil {
		return errors.Wrapf(err, "unable to write %s", path)
	}
	return nil
}

// TreeEntry is one entry of a recursive git tree listing.
type TreeEntry struct {
	Path string `json:"path"`
	// Type is "blob" for files, "tree" for directories.
	Type string `json:"type"`
}

// Tree is a recursive git tree listing. The Truncated flag mirrors the
// API's: when set, the listing is incomplete.
type Tree struct {
	Entries   []TreeEntry `json:"tree"`
	Truncated bool        `json:"truncated"`
}

// GetTree returns the full recursive tree at the given branch ref.
func (c *Client) GetTree(ctx context.Context, owner string, repo string, ref string) (*Tree, error) {
	endpoint := fmt.Sprintf("/repos/%s/%s/git/trees/%s?recursive=1",
		url.PathEscape(owner), url.PathEscape(repo), url.PathEscape(ref))
	var tree Tree
	if err := c.rest(ctx, "GET", endpoint, nil, &tree); err != nil {
		return nil, errors.Wrap(err, "unable to fetch repository tree")
	}
	return &tree, nil
}
