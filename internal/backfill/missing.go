package backfill

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/weehong/github-repository-metadata-generator/internal/gh"
)

// Field is one of the four metadata fields this tool can generate.
type Field string

const (
	FieldDescription Field = "description"
	FieldWebsite     Field = "website"
	FieldTopics      Field = "topics"
	FieldReadme      Field = "README.md"
)

// Fields lists every generatable field, in pipeline order.
var Fields = []Field{FieldDescription, FieldWebsite, FieldTopics, FieldReadme}

const readmePath = "README.md"

// MissingFields computes which metadata fields are absent on the given
// repository snapshot. It's a pure function: the same snapshot always
// yields the same set. The result is only used to preselect fields; the
// user can still generate any of them.
func MissingFields(repo gh.RepositorySummary, readmeExists bool) []Field {
	var missing []Field
	if strings.TrimSpace(repo.Description) == "" {
		missing = append(missing, FieldDescription)
	}
	if strings.TrimSpace(repo.Homepage) == "" {
		missing = append(missing, FieldWebsite)
	}
	if len(repo.Topics) == 0 {
		missing = append(missing, FieldTopics)
	}
	if !readmeExists {
		missing = append(missing, FieldReadme)
	}
	return missing
}

// ReadmeExists probes the contents endpoint for a root README.md. Only an
// explicit not-found response counts as absent; any other failure means the
// README is not confirmed absent, so it's reported as existing.
func ReadmeExists(ctx context.Context, src ContentSource, repo gh.RepositorySummary) bool {
	_, err := src.GetContents(ctx, repo.Owner.Login, repo.Name, readmePath, "")
	if err == nil {
		return true
	}
	if gh.IsNotFound(err) {
		return false
	}
	logrus.WithError(err).Debug("README existence check failed")
	return true
}
