package backfill

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/sirupsen/logrus"
	"github.com/weehong/github-repository-metadata-generator/internal/gh"
)

// ContentSource is the read-only slice of the GitHub client that context
// gathering needs.
type ContentSource interface {
	GetTree(ctx context.Context, owner string, repo string, ref string) (*gh.Tree, error)
	GetContents(ctx context.Context, owner string, repo string, path string, ref string) (*gh.FileContents, error)
}

// RepoContext is the bounded snapshot of a repository used as generation
// input. It is built fresh per run and never written back anywhere.
type RepoContext struct {
	Name          string
	FullName      string
	Description   string
	Language      string
	Topics        []string
	Private       bool
	DefaultBranch string

	// Files holds up to maxContextFiles blob paths in tree order.
	Files []string
	// Manifest is the parsed package.json, if one exists at the root and
	// parses cleanly.
	Manifest *Manifest
	// ConfigFile is the first recognized build-config file found, raw and
	// untruncated. Generators truncate at use time.
	ConfigFile *ConfigFile
}

// Manifest is the subset of a package.json that the generators care about.
type Manifest struct {
	Name         string
	Description  string
	Dependencies []string
}

type ConfigFile struct {
	Name string
	Text string
}

const (
	maxContextFiles = 100
	manifestPath    = "package.json"
)

// configFilePriority is scanned in order; the first file that exists wins
// and the rest are never fetched.
var configFilePriority = []string{
	"go.mod",
	"Cargo.toml",
	"pyproject.toml",
	"requirements.txt",
	"Gemfile",
	"pom.xml",
	"build.gradle",
	"composer.json",
	"CMakeLists.txt",
	"Makefile",
}

// BuildContext gathers a RepoContext for the given repository. It never
// fails: any fetch or parse error degrades the context (logged as a warning
// at worst) rather than aborting the run.
func BuildContext(ctx context.Context, src ContentSource, repo gh.RepositorySummary) RepoContext {
	rc := RepoContext{
		Name:          repo.Name,
		FullName:      repo.FullName,
		Description:   repo.Description,
		Language:      repo.Language,
		Topics:        repo.Topics,
		Private:       repo.Private,
		DefaultBranch: repo.DefaultBranch,
	}
	if rc.Language == "" {
		rc.Language = "Unknown"
	}

	tree, err := src.GetTree(ctx, repo.Owner.Login, repo.Name, repo.DefaultBranch)
	if err != nil {
		// Without the tree there is nothing useful to probe for, so keep
		// only the seeded summary fields.
		logrus.WithError(err).Warn("failed to fetch repository contents, generating from repository metadata only")
		return rc
	}
	for _, entry := range tree.Entries {
		if entry.Type != "blob" {
			continue
		}
		rc.Files = append(rc.Files, entry.Path)
		if len(rc.Files) >= maxContextFiles {
			break
		}
	}

	rc.Manifest = fetchManifest(ctx, src, repo)
	rc.ConfigFile = probeConfigFile(ctx, src, repo)
	return rc
}

func fetchManifest(ctx context.Context, src ContentSource, repo gh.RepositorySummary) *Manifest {
	file, err := src.GetContents(ctx, repo.Owner.Login, repo.Name, manifestPath, repo.DefaultBranch)
	if err != nil {
		logrus.WithError(err).Debug("no manifest found")
		return nil
	}

	var parsed struct {
		Name         string            `json:"name"`
		Description  string            `json:"description"`
		Dependencies map[string]string `json:"dependencies"`
	}
	if err := json.Unmarshal([]byte(file.Text), &parsed); err != nil {
		logrus.WithError(err).Debug("failed to parse manifest")
		return nil
	}

	deps := make([]string, 0, len(parsed.Dependencies))
	for name := range parsed.Dependencies {
		deps = append(deps, name)
	}
	sort.Strings(deps)
	return &Manifest{
		Name:         parsed.Name,
		Description:  parsed.Description,
		Dependencies: deps,
	}
}

func probeConfigFile(ctx context.Context, src ContentSource, repo gh.RepositorySummary) *ConfigFile {
	for _, name := range configFilePriority {
		file, err := src.GetContents(ctx, repo.Owner.Login, repo.Name, name, repo.DefaultBranch)
		if err != nil {
			continue
		}
		return &ConfigFile{Name: name, Text: file.Text}
	}
	return nil
}
