package backfill

import (
	"context"
	"fmt"
	"testing"

	"emperror.dev/errors"
	"github.com/stretchr/testify/require"
	"github.com/weehong/github-repository-metadata-generator/internal/gh"
)

var testRepo = gh.RepositorySummary{
	Name:          "widget",
	FullName:      "spam/widget",
	Owner:         gh.Owner{Login: "spam"},
	Description:   "makes widgets",
	Language:      "Go",
	Topics:        []string{"widgets"},
	DefaultBranch: "main",
}

func TestBuildContextSeedsSummaryFields(t *testing.T) {
	src := &fakeSource{tree: &gh.Tree{}}
	rc := BuildContext(context.Background(), src, testRepo)
	require.Equal(t, "widget", rc.Name)
	require.Equal(t, "spam/widget", rc.FullName)
	require.Equal(t, "makes widgets", rc.Description)
	require.Equal(t, "Go", rc.Language)
	require.Equal(t, []string{"widgets"}, rc.Topics)
	require.Equal(t, "main", rc.DefaultBranch)
}

func TestBuildContextUnknownLanguage(t *testing.T) {
	repo := testRepo
	repo.Language = ""
	src := &fakeSource{tree: &gh.Tree{}}
	rc := BuildContext(context.Background(), src, repo)
	require.Equal(t, "Unknown", rc.Language)
}

func TestBuildContextNeverFails(t *testing.T) {
	// A tree fetch failure degrades the context to the seeded summary
	// fields; it must not surface as an error (BuildContext has no error
	// return to begin with, so this checks the degraded shape).
	src := &fakeSource{treeErr: errors.New("network is down")}
	rc := BuildContext(context.Background(), src, testRepo)
	require.Equal(t, "widget", rc.Name)
	require.Empty(t, rc.Files)
	require.Nil(t, rc.Manifest)
	require.Nil(t, rc.ConfigFile)
	// The rest of the gathering is abandoned outright.
	require.Empty(t, src.fetchedPaths)
}

func TestBuildContextKeepsBlobsOnly(t *testing.T) {
	src := &fakeSource{tree: &gh.Tree{Entries: []gh.TreeEntry{
		{Path: "cmd", Type: "tree"},
		{Path: "cmd/main.go", Type: "blob"},
		{Path: "internal", Type: "tree"},
		{Path: "internal/widget.go", Type: "blob"},
	}}}
	rc := BuildContext(context.Background(), src, testRepo)
	require.Equal(t, []string{"cmd/main.go", "internal/widget.go"}, rc.Files)
}

func TestBuildContextCapsFileList(t *testing.T) {
	var entries []gh.TreeEntry
	for i := 0; i < 250; i++ {
		entries = append(entries, gh.TreeEntry{Path: fmt.Sprintf("file_%03d", i), Type: "blob"})
	}
	src := &fakeSource{tree: &gh.Tree{Entries: entries}}
	rc := BuildContext(context.Background(), src, testRepo)
	require.Len(t, rc.Files, 100)
	// Tree order is preserved, not re-sorted.
	require.Equal(t, "file_000", rc.Files[0])
	require.Equal(t, "file_099", rc.Files[99])
}

func TestBuildContextParsesManifest(t *testing.T) {
	src := &fakeSource{
		tree: &gh.Tree{Entries: []gh.TreeEntry{{Path: "package.json", Type: "blob"}}},
		files: map[string]string{
			"package.json": `{
				"name": "widget",
				"description": "makes widgets",
				"dependencies": {"react": "^18.0.0", "express": "^4.18.0"}
			}`,
		},
	}
	rc := BuildContext(context.Background(), src, testRepo)
	require.NotNil(t, rc.Manifest)
	require.Equal(t, "widget", rc.Manifest.Name)
	require.Equal(t, "makes widgets", rc.Manifest.Description)
	require.Equal(t, []string{"express", "react"}, rc.Manifest.Dependencies)
}

func TestBuildContextManifestParseFailureIsSilent(t *testing.T) {
	src := &fakeSource{
		tree:  &gh.Tree{Entries: []gh.TreeEntry{{Path: "package.json", Type: "blob"}}},
		files: map[string]string{"package.json": "not json at all"},
	}
	rc := BuildContext(context.Background(), src, testRepo)
	require.Nil(t, rc.Manifest)
}

func TestBuildContextConfigFilePriority(t *testing.T) {
	// Cargo.toml precedes requirements.txt in the priority list; only the
	// first match is attached even though both exist.
	src := &fakeSource{
		tree: &gh.Tree{},
		files: map[string]string{
			"Cargo.toml":       "[package]\nname = \"widget\"",
			"requirements.txt": "requests==2.31.0",
		},
	}
	rc := BuildContext(context.Background(), src, testRepo)
	require.NotNil(t, rc.ConfigFile)
	require.Equal(t, "Cargo.toml", rc.ConfigFile.Name)
	require.Equal(t, "[package]\nname = \"widget\"", rc.ConfigFile.Text)
}

func TestBuildContextConfigFileStoredRaw(t *testing.T) {
	long := make([]byte, 0, 2000)
	for i := 0; i < 2000; i++ {
		long = append(long, 'x')
	}
	src := &fakeSource{
		tree:  &gh.Tree{},
		files: map[string]string{"go.mod": string(long)},
	}
	rc := BuildContext(context.Background(), src, testRepo)
	require.NotNil(t, rc.ConfigFile)
	// Truncation happens at prompt-build time, not here.
	require.Len(t, rc.ConfigFile.Text, 2000)
}

func TestBuildContextNoConfigFile(t *testing.T) {
	src := &fakeSource{tree: &gh.Tree{}, files: map[string]string{}}
	rc := BuildContext(context.Background(), src, testRepo)
	require.Nil(t, rc.ConfigFile)
}
