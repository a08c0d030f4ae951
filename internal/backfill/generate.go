package backfill

import (
	"context"
	"regexp"
	"strings"
	"text/template"
	"unicode/utf8"

	"emperror.dev/errors"
	"github.com/weehong/github-repository-metadata-generator/internal/utils/stringutils"
	"github.com/weehong/github-repository-metadata-generator/internal/utils/templateutils"
)

// Completer is the slice of the LLM client that generators consume.
type Completer interface {
	Complete(ctx context.Context, prompt string, maxTokens int) (string, error)
}

const (
	// Hard limit enforced by the GitHub repository description field.
	maxDescriptionLen = 350
	maxTopics         = 10
	maxTopicLen       = 50

	// Per-field prompt bounds: how many file paths and how much of the
	// config file each prompt may carry.
	descriptionFileSample   = 20
	topicsFileSample        = 30
	readmeFileSample        = 50
	descriptionConfigSample = 500
	topicsConfigSample      = 300

	// Per-field completion budgets.
	descriptionTokens = 100
	websiteTokens     = 100
	topicsTokens      = 150
	readmeTokens      = 2000
)

type promptData struct {
	FullName      string
	Description   string
	Language      string
	Files         []string
	ManifestName  string
	ManifestDesc  string
	Dependencies  []string
	ConfigName    string
	ConfigContent string
}

func newPromptData(rc RepoContext, fileSample int, configSample int) promptData {
	data := promptData{
		FullName:    rc.FullName,
		Description: rc.Description,
		Language:    rc.Language,
		Files:       rc.Files,
	}
	if len(data.Files) > fileSample {
		data.Files = data.Files[:fileSample]
	}
	if rc.Manifest != nil {
		data.ManifestName = rc.Manifest.Name
		data.ManifestDesc = rc.Manifest.Description
		data.Dependencies = rc.Manifest.Dependencies
	}
	if rc.ConfigFile != nil {
		data.ConfigName = rc.ConfigFile.Name
		data.ConfigContent = stringutils.Truncate(rc.ConfigFile.Text, configSample)
	}
	return data
}

var promptFuncs = template.FuncMap{
	"join": strings.Join,
}

var descriptionPrompt = template.Must(template.New("description").Funcs(promptFuncs).Parse(
	`Write a concise description for the GitHub repository {{ .FullName }}.
Primary language: {{ .Language }}.
{{- if .ManifestDesc }}
The package manifest describes it as: {{ .ManifestDesc }}
{{- end }}
{{- if .Dependencies }}
It depends on: {{ join .Dependencies ", " }}.
{{- end }}
{{- if .ConfigName }}
Contents of {{ .ConfigName }}:
{{ .ConfigContent }}
{{- end }}
{{- if .Files }}
Files in the repository:
{{- range .Files }}
{{ . }}
{{- end }}
{{- end }}

Respond with a single plain-text sentence of at most 350 characters
describing what the project does. Do not use quotes or Markdown.`))

var websitePrompt = template.Must(template.New("website").Funcs(promptFuncs).Parse(
	`Suggest a homepage URL for the GitHub repository {{ .FullName }}.
Primary language: {{ .Language }}.
{{- if .Description }}
Description: {{ .Description }}
{{- end }}
{{- if .ManifestName }}
Package name: {{ .ManifestName }}
{{- end }}

If the project is likely published as a package or has documentation
hosting, respond with that URL. Otherwise respond with the repository's
GitHub Pages URL. Respond with the URL only, no other text.`))

var topicsPrompt = template.Must(template.New("topics").Funcs(promptFuncs).Parse(
	`Suggest GitHub topics for the repository {{ .FullName }}.
Primary language: {{ .Language }}.
{{- if .Description }}
Description: {{ .Description }}
{{- end }}
{{- if .Dependencies }}
It depends on: {{ join .Dependencies ", " }}.
{{- end }}
{{- if .ConfigName }}
Contents of {{ .ConfigName }}:
{{ .ConfigContent }}
{{- end }}
{{- if .Files }}
Files in the repository:
{{- range .Files }}
{{ . }}
{{- end }}
{{- end }}

Respond with up to 10 short lowercase topics as a single comma-separated
list, no other text.`))

var readmePrompt = template.Must(template.New("readme").Funcs(promptFuncs).Parse(
	`Write a README for the GitHub repository {{ .FullName }}.
Primary language: {{ .Language }}.
{{- if .Description }}
Description: {{ .Description }}
{{- end }}
{{- if .ManifestDesc }}
The package manifest describes it as: {{ .ManifestDesc }}
{{- end }}
{{- if .Dependencies }}
It depends on: {{ join .Dependencies ", " }}.
{{- end }}
{{- if .Files }}
Files in the repository:
{{- range .Files }}
{{ . }}
{{- end }}
{{- end }}

Write a complete README.md in Markdown with a project title, a short
overview, and installation and usage sections where they make sense for
this project. Respond with the Markdown content only.`))

// GenerateDescription drafts a repository description, hard-truncated to
// the 350-character limit the repository field enforces.
func GenerateDescription(ctx context.Context, llm Completer, rc RepoContext) (string, error) {
	prompt, err := templateutils.String(descriptionPrompt, newPromptData(rc, descriptionFileSample, descriptionConfigSample))
	if err != nil {
		return "", errors.Wrap(err, "failed to render description prompt")
	}
	out, err := llm.Complete(ctx, prompt, descriptionTokens)
	if err != nil {
		return "", errors.Wrap(err, "failed to generate description")
	}
	return stringutils.Truncate(strings.TrimSpace(out), maxDescriptionLen), nil
}

// GenerateWebsite drafts a homepage URL. The result is trimmed but not
// validated; whatever the model returns is offered to the user as-is.
func GenerateWebsite(ctx context.Context, llm Completer, rc RepoContext) (string, error) {
	prompt, err := templateutils.String(websitePrompt, newPromptData(rc, 0, 0))
	if err != nil {
		return "", errors.Wrap(err, "failed to render website prompt")
	}
	out, err := llm.Complete(ctx, prompt, websiteTokens)
	if err != nil {
		return "", errors.Wrap(err, "failed to generate website")
	}
	return strings.TrimSpace(out), nil
}

// GenerateTopics drafts a topic list, normalized with NormalizeTopics.
func GenerateTopics(ctx context.Context, llm Completer, rc RepoContext) ([]string, error) {
	prompt, err := templateutils.String(topicsPrompt, newPromptData(rc, topicsFileSample, topicsConfigSample))
	if err != nil {
		return nil, errors.Wrap(err, "failed to render topics prompt")
	}
	out, err := llm.Complete(ctx, prompt, topicsTokens)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate topics")
	}
	return NormalizeTopics(out), nil
}

// GenerateReadme drafts a full README in Markdown, returned verbatim apart
// from whitespace trimming.
func GenerateReadme(ctx context.Context, llm Completer, rc RepoContext) (string, error) {
	prompt, err := templateutils.String(readmePrompt, newPromptData(rc, readmeFileSample, 0))
	if err != nil {
		return "", errors.Wrap(err, "failed to render readme prompt")
	}
	out, err := llm.Complete(ctx, prompt, readmeTokens)
	if err != nil {
		return "", errors.Wrap(err, "failed to generate README")
	}
	return strings.TrimSpace(out), nil
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// NormalizeTopics turns raw model output into a valid topic list: split on
// commas, trim, lowercase, collapse whitespace runs into hyphens, drop
// empty and over-long entries, keep at most the first ten. No other
// character rewriting is done.
func NormalizeTopics(raw string) []string {
	var topics []string
	for _, piece := range strings.Split(raw, ",") {
		topic := strings.ToLower(strings.TrimSpace(piece))
		topic = whitespaceRun.ReplaceAllString(topic, "-")
		if topic == "" || utf8.RuneCountInString(topic) > maxTopicLen {
			continue
		}
		topics = append(topics, topic)
		if len(topics) == maxTopics {
			break
		}
	}
	return topics
}
