package main

import (
	"context"
	"fmt"

	"github.com/gradlekit/scriptdefs/internal/definition"
	"github.com/gradlekit/scriptdefs/internal/fancy"
	"github.com/urfave/cli/v3"
)

var classpathCmd = &cli.Command{
	Name:  "classpath",
	Usage: "Print the aggregated template classpath of a project",
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
			Usage:   "Show styled tree view instead of plain entries",
		},
	},
	Action: classpathAction,
}

func classpathAction(ctx context.Context, cmd *cli.Command) error {
	contrib, err := buildContributor(cmd)
	if err != nil {
		return err
	}

	defs := contrib.Definitions(ctx)
	entries := definition.AggregateClasspath(defs)

	if cmd.Bool("tree") {
		fmt.Println(fancy.ClasspathTree(cmd.String("project"), entries))
		return nil
	}

	// Plain entries, one per line, suitable for shell composition
	for _, entry := range entries {
		fmt.Println(entry)
	}
	return nil
}
