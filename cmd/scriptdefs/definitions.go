package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gradlekit/scriptdefs/internal/contributor"
	"github.com/gradlekit/scriptdefs/internal/definition"
	"github.com/gradlekit/scriptdefs/internal/fancy"
	"github.com/gradlekit/scriptdefs/internal/loader"
	"github.com/gradlekit/scriptdefs/internal/loader/jarmanifest"
	"github.com/gradlekit/scriptdefs/internal/loader/scripted"
	"github.com/gradlekit/scriptdefs/internal/settings"
	"github.com/urfave/cli/v3"
)

var definitionsCmd = &cli.Command{
	Name:  "definitions",
	Usage: "Run one discovery pass and print the script definitions of a project",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "settings",
			Aliases:  []string{"s"},
			Usage:    "Path to the TOML settings file",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "project",
			Aliases:  []string{"p"},
			Usage:    "Root directory of the linked project",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "script",
			Usage: "Risor descriptor script to load definitions with, instead of jar manifests",
		},
		&cli.BoolFlag{
			Name:    "tree",
			Aliases: []string{"t"},
			Usage:   "Show detailed tree view of the definition set",
		},
	},
	Action: definitionsAction,
}

func definitionsAction(ctx context.Context, cmd *cli.Command) error {
	projectRoot := cmd.String("project")

	contrib, err := buildContributor(cmd)
	if err != nil {
		return err
	}

	defs := contrib.Definitions(ctx)

	if cmd.Bool("tree") {
		fmt.Println(fancy.DefinitionTree(projectRoot, defs))
		return nil
	}

	fmt.Println(renderDefinitionSummary(projectRoot, defs))
	return nil
}

// buildContributor wires a one-shot contributor from the command's settings,
// project, and script flags.
func buildContributor(cmd *cli.Command) (*contributor.Contributor, error) {
	handler := slog.Default().Handler()

	ldr, err := buildLoader(cmd, handler)
	if err != nil {
		return nil, err
	}

	provider := settings.NewFileProvider(cmd.String("settings"))
	contrib, err := contributor.New(cmd.String("project"), provider, ldr, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create contributor: %w", err)
	}
	return contrib, nil
}

func buildLoader(cmd *cli.Command, handler slog.Handler) (loader.TemplateLoader, error) {
	if scriptPath := cmd.String("script"); scriptPath != "" {
		ldr, err := scripted.NewFromFile(handler, scriptPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load descriptor script: %w", err)
		}
		return ldr, nil
	}
	return jarmanifest.New(handler), nil
}

// renderDefinitionSummary creates a formatted summary string for a definition set
func renderDefinitionSummary(projectRoot string, defs []definition.ScriptDefinition) string {
	var summary strings.Builder

	summary.WriteString("\nDefinition Summary:\n")
	summary.WriteString(fmt.Sprintf("- Project: %s\n", projectRoot))
	summary.WriteString(fmt.Sprintf("- Definitions: %d\n", len(defs)))

	for _, def := range defs {
		if definition.IsPlaceholder(def) {
			summary.WriteString(fmt.Sprintf("- %s: %s\n",
				fancy.ErrorText("unavailable"), def.FailureMessage))
			continue
		}
		summary.WriteString(fmt.Sprintf("- %s (%s)\n",
			fancy.DefinitionText(def.Name), def.TemplateClass))
	}

	summary.WriteString("\nUse --tree for a more detailed view of the definitions.")
	return summary.String()
}
