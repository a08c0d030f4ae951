package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/kr/text"
	"github.com/weehong/github-repository-metadata-generator/internal/backfill"
	"github.com/weehong/github-repository-metadata-generator/internal/config"
	"github.com/weehong/github-repository-metadata-generator/internal/gh"
	"github.com/weehong/github-repository-metadata-generator/internal/llm"
	"github.com/weehong/github-repository-metadata-generator/internal/ui"
	"github.com/weehong/github-repository-metadata-generator/internal/utils/colors"
)

// run is the whole pipeline: authenticate, pick a repository, figure out
// which fields are missing, generate the selected ones, preview, and write
// back after confirmation. Strictly sequential; every network call and
// prompt blocks until it finishes.
func run(ctx context.Context, cfg *config.Config) error {
	ghToken, err := requireSecret(cfg.GitHub.Token, "GitHub access token:")
	if err != nil {
		return err
	}
	openaiKey, err := requireSecret(cfg.OpenAI.ApiKey, "OpenAI API key:")
	if err != nil {
		return err
	}

	ghClient, err := gh.NewClient(ghToken, cfg.GitHub.BaseUrl)
	if err != nil {
		return err
	}

	viewer, err := ghClient.Viewer(ctx)
	if err != nil {
		if gh.IsHTTPUnauthorized(err) {
			_, _ = fmt.Fprint(
				os.Stderr,
				colors.Failure("Your GitHub token was rejected. Please verify that it is correct.\n"),
			)
			return ui.ErrExitSilently{ExitCode: 1}
		}
		return err
	}
	_, _ = fmt.Fprint(os.Stderr, "Logged in as ", colors.UserInput(viewer.Login), ".\n")

	repos, err := ghClient.ListRepositories(ctx)
	if err != nil {
		return err
	}
	if len(repos) == 0 {
		fmt.Println("You don't have any repositories. Nothing to do.")
		return nil
	}

	repo, err := ui.SelectRepository(repos)
	if err != nil {
		return err
	}

	readmeExists := backfill.ReadmeExists(ctx, ghClient, repo)
	missing := backfill.MissingFields(repo, readmeExists)

	if len(missing) == 0 {
		regenerate, err := ui.Confirm(
			fmt.Sprintf("All metadata on %s is already set. Regenerate anyway?", repo.FullName),
			false,
		)
		if err != nil {
			return err
		}
		if !regenerate {
			fmt.Println("Nothing to do.")
			return nil
		}
	}

	fields, err := selectFields(missing)
	if err != nil {
		return err
	}
	if len(fields) == 0 {
		fmt.Println("No fields selected. Nothing to do.")
		return nil
	}

	llmClient, err := llm.NewClient(openaiKey, cfg.OpenAI.Model)
	if err != nil {
		return err
	}

	fmt.Println(colors.Faint("Gathering repository context..."))
	repoContext := backfill.BuildContext(ctx, ghClient, repo)

	generated, err := generateFields(ctx, llmClient, repoContext, fields)
	if err != nil {
		return err
	}

	printPreview(repo, generated)

	apply, err := ui.Confirm(fmt.Sprintf("Apply these changes to %s?", repo.FullName), true)
	if err != nil {
		return err
	}
	if !apply {
		fmt.Println("Cancelled. No changes were made.")
		return nil
	}

	result, applyErr := backfill.Apply(ctx, ghClient, repo, generated)
	if result.UpdatedAttributes {
		fmt.Println(colors.Success("✓ Updated repository description/website."))
	}
	if result.ReplacedTopics {
		fmt.Println(colors.Success("✓ Replaced repository topics."))
	}
	if result.WroteReadme {
		fmt.Println(colors.Success("✓ Wrote README.md."))
	}
	if result.ReadmeErr != nil {
		fmt.Println(colors.Failure("✗ Failed to write README.md: ", result.ReadmeErr))
	}
	return applyErr
}

// requireSecret returns the configured value, or solicits it with a masked
// prompt when the configuration doesn't have it.
func requireSecret(configured string, prompt string) (string, error) {
	if configured != "" {
		return configured, nil
	}
	return ui.SecretInput(prompt)
}

// selectFields shows the field checkbox list, preselecting the fields that
// are currently missing on the repository.
func selectFields(missing []backfill.Field) ([]backfill.Field, error) {
	preselected := make(map[backfill.Field]bool, len(missing))
	for _, field := range missing {
		preselected[field] = true
	}

	items := make([]ui.MultiSelectItem, 0, len(backfill.Fields))
	for _, field := range backfill.Fields {
		items = append(items, ui.MultiSelectItem{
			Label:    string(field),
			Selected: preselected[field],
		})
	}

	checked, err := ui.MultiSelect("Which fields should be generated?", items)
	if err != nil {
		return nil, err
	}

	fields := make([]backfill.Field, 0, len(checked))
	for _, i := range checked {
		fields = append(fields, backfill.Fields[i])
	}
	return fields, nil
}

// generateFields runs one generator per selected field, in pipeline order.
// Any generation failure aborts the run; nothing is applied.
func generateFields(
	ctx context.Context,
	llmClient *llm.Client,
	repoContext backfill.RepoContext,
	fields []backfill.Field,
) (backfill.GeneratedMetadata, error) {
	var generated backfill.GeneratedMetadata
	for _, field := range fields {
		fmt.Println(colors.Faint(fmt.Sprintf("Generating %s...", field)))
		switch field {
		case backfill.FieldDescription:
			description, err := backfill.GenerateDescription(ctx, llmClient, repoContext)
			if err != nil {
				return generated, err
			}
			generated.Description = gh.Ptr(description)
		case backfill.FieldWebsite:
			website, err := backfill.GenerateWebsite(ctx, llmClient, repoContext)
			if err != nil {
				return generated, err
			}
			generated.Website = gh.Ptr(website)
		case backfill.FieldTopics:
			topics, err := backfill.GenerateTopics(ctx, llmClient, repoContext)
			if err != nil {
				return generated, err
			}
			if len(topics) == 0 {
				fmt.Println(colors.Warning("No usable topics were generated; topics will be left unchanged."))
				continue
			}
			generated.Topics = topics
		case backfill.FieldReadme:
			readme, err := backfill.GenerateReadme(ctx, llmClient, repoContext)
			if err != nil {
				return generated, err
			}
			generated.Readme = gh.Ptr(readme)
		}
	}
	return generated, nil
}

func printPreview(repo gh.RepositorySummary, generated backfill.GeneratedMetadata) {
	fmt.Println()
	fmt.Println(colors.Bold("Generated metadata for "), colors.UserInput(repo.FullName))
	if generated.Description != nil {
		fmt.Println(colors.Field("description:"))
		fmt.Print(text.Indent(text.Wrap(*generated.Description, 80), "  "), "\n")
	}
	if generated.Website != nil {
		fmt.Println(colors.Field("website:"), *generated.Website)
	}
	if generated.Topics != nil {
		fmt.Println(colors.Field("topics:"), strings.Join(generated.Topics, ", "))
	}
	if generated.Readme != nil {
		lines := strings.Count(*generated.Readme, "\n") + 1
		fmt.Println(colors.Field("README.md:"), colors.Faint(fmt.Sprintf("%d lines of Markdown", lines)))
	}
	fmt.Println()
}
