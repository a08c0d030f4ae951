package backfill

import (
	"context"

	"emperror.dev/errors"
	"github.com/sirupsen/logrus"
	"github.com/weehong/github-repository-metadata-generator/internal/gh"
)

// MetadataStore is the writable slice of the GitHub client that the apply
// step consumes.
type MetadataStore interface {
	UpdateRepository(ctx context.Context, owner string, repo string, opts gh.UpdateRepositoryOpts) error
	ReplaceAllTopics(ctx context.Context, owner string, repo string, topics []string) error
	GetContents(ctx context.Context, owner string, repo string, path string, ref string) (*gh.FileContents, error)
	PutContents(ctx context.Context, owner string, repo string, path string, opts gh.PutContentsOpts) error
}

// GeneratedMetadata accumulates the drafted fields for one run. Nil fields
// were not selected (or not generated) and are never written back.
type GeneratedMetadata struct {
	Description *string
	Website     *string
	Topics      []string
	Readme      *string
}

// Empty reports whether nothing was generated.
func (g GeneratedMetadata) Empty() bool {
	return g.Description == nil && g.Website == nil && g.Topics == nil && g.Readme == nil
}

// ApplyResult records which writes the apply step performed.
type ApplyResult struct {
	UpdatedAttributes bool
	ReplacedTopics    bool
	WroteReadme       bool
	// ReadmeErr is set when the README write failed. Unlike the attribute
	// and topic writes, a README failure doesn't abort the apply step and
	// doesn't roll anything back.
	ReadmeErr error
}

const readmeCommitMessage = "docs: add README"

// Apply writes the generated fields back to the repository. Description and
// website are merged into a single attribute update; topics replace the
// repository's entire topic set. Errors from either of those halt the
// remaining sequence (already-applied writes stay applied). The README write
// runs last and its failure is only recorded in the result.
func Apply(ctx context.Context, dst MetadataStore, repo gh.RepositorySummary, gen GeneratedMetadata) (*ApplyResult, error) {
	res := &ApplyResult{}
	owner := repo.Owner.Login

	if gen.Description != nil || gen.Website != nil {
		opts := gh.UpdateRepositoryOpts{
			Description: gen.Description,
			Homepage:    gen.Website,
		}
		if err := dst.UpdateRepository(ctx, owner, repo.Name, opts); err != nil {
			return res, err
		}
		res.UpdatedAttributes = true
	}

	if gen.Topics != nil {
		if err := dst.ReplaceAllTopics(ctx, owner, repo.Name, gen.Topics); err != nil {
			return res, err
		}
		res.ReplacedTopics = true
	}

	if gen.Readme != nil {
		if err := applyReadme(ctx, dst, repo, *gen.Readme); err != nil {
			res.ReadmeErr = err
		} else {
			res.WroteReadme = true
		}
	}

	return res, nil
}

func applyReadme(ctx context.Context, dst MetadataStore, repo gh.RepositorySummary, content string) error {
	opts := gh.PutContentsOpts{
		Message: readmeCommitMessage,
		Content: content,
	}
	// Fresh existence check: an update must carry the prior blob hash.
	// Note that any lookup failure here (not just not-found) is treated as
	// "the file does not exist" and we attempt a create.
	existing, err := dst.GetContents(ctx, repo.Owner.Login, repo.Name, readmePath, "")
	if err != nil {
		if !gh.IsNotFound(err) {
			logrus.WithError(err).Debug("README lookup before write failed, attempting create")
		}
	} else {
		opts.SHA = existing.SHA
	}

	if err := dst.PutContents(ctx, repo.Owner.Login, repo.Name, readmePath, opts); err != nil {
		return errors.Wrap(err, "failed to write README")
	}
	return nil
}
