package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/gradlekit/scriptdefs/internal/fancy"
	"github.com/gradlekit/scriptdefs/internal/settings"
	"github.com/urfave/cli/v3"
)

var validateCmd = &cli.Command{
	Name:    "validate",
	Aliases: []string{"lint"},
	Usage:   "Validate a settings file",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "settings",
			Aliases: []string{"s"},
			Usage:   "Path to the TOML settings file",
		},
	},
	Suggest: true,
	Action:  validateAction,
}

func validateAction(ctx context.Context, cmd *cli.Command) error {
	// Check for settings flag first, then fall back to positional argument
	settingsPath := cmd.String("settings")
	if settingsPath == "" {
		if cmd.Args().Len() < 1 {
			return fmt.Errorf(
				"settings file path required (use the --settings flag, or provide the file as positional argument)",
			)
		}
		settingsPath = cmd.Args().Get(0)
	}

	file, err := settings.FromFile(settingsPath)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	if err := file.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	fmt.Printf("Settings file %s is %s\n", settingsPath, fancy.ValidText("valid"))
	fmt.Println(renderSettingsSummary(settingsPath, file))
	return nil
}

// renderSettingsSummary creates a formatted summary string for the settings file
func renderSettingsSummary(path string, file *settings.File) string {
	var summary strings.Builder

	summary.WriteString("\nSettings Summary:\n")
	summary.WriteString(fmt.Sprintf("- Path: %s\n", path))
	summary.WriteString(fmt.Sprintf("- Version: %s\n", file.Version))
	summary.WriteString(fmt.Sprintf("- Linked projects: %d\n", len(file.Projects)))

	for i := range file.Projects {
		p := &file.Projects[i]
		summary.WriteString(fmt.Sprintf("- %s (home=%s, dist=%s)\n",
			fancy.PathText(p.ProjectRoot), p.GradleHome, p.DistributionType))
	}

	return summary.String()
}
