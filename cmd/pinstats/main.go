package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/richard-senior/pinstats/internal/logger"
	"github.com/richard-senior/pinstats/pkg/reports"
	"github.com/richard-senior/pinstats/pkg/util"
	"github.com/richard-senior/pinstats/pkg/util/pinball"
)

func main() {
	logger.SetShowDateTime(false)

	app := &cli.App{
		Name:  "pinstats",
		Usage: "statistics and reports from a pinball league match archive",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to the configuration file",
				Value:   "pinstats.yaml",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "enable debug logging",
			},
		},
		Before: func(c *cli.Context) error {
			if c.Bool("verbose") {
				logger.SetLevel(logger.DEBUG)
			}
			// Optional .env next to the binary, same precedence as the shell
			if err := godotenv.Load(); err == nil {
				logger.Debug("loaded environment from .env")
			}
			return pinball.LoadConfigFile(c.String("config"))
		},
		Commands: []*cli.Command{
			newReportCommand(),
			newAliasCommand(),
			newAuditCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Error("pinstats failed:", err)
		os.Exit(1)
	}
}

func newReportCommand() *cli.Command {
	return &cli.Command{
		Name:  "report",
		Usage: "generate markdown reports into the output directory",
		Subcommands: []*cli.Command{
			{
				Name:  "machines",
				Usage: "score distributions per machine, optionally for one venue",
				Action: func(c *cli.Context) error {
					venue := c.Args().First()
					return withSource(func(src *reports.Source) error {
						content, err := reports.MachinesReport(src, venue)
						if err != nil {
							return err
						}
						if err := emit(reportName("machines", venue), content); err != nil {
							return err
						}
						if pinball.Config.ChartsEnabled {
							return emitCharts(src, venue)
						}
						return nil
					})
				},
			},
			{
				Name:  "advantage",
				Usage: "home versus away points per machine",
				Action: func(c *cli.Context) error {
					venue := c.Args().First()
					return withSource(func(src *reports.Source) error {
						content, err := reports.AdvantageReport(src, venue)
						if err != nil {
							return err
						}
						return emit(reportName("advantage", venue), content)
					})
				},
			},
			{
				Name:  "picks",
				Usage: "machine pick counts, league wide or for one team",
				Action: func(c *cli.Context) error {
					team := c.Args().First()
					return withSource(func(src *reports.Source) error {
						content, err := reports.PicksReport(src, team)
						if err != nil {
							return err
						}
						return emit(reportName("picks", team), content)
					})
				},
			},
			{
				Name:      "teams",
				Usage:     "head-to-head comparison of two teams",
				ArgsUsage: "TEAM_A TEAM_B",
				Action: func(c *cli.Context) error {
					if c.NArg() != 2 {
						return fmt.Errorf("teams report needs exactly two team keys")
					}
					a, b := c.Args().Get(0), c.Args().Get(1)
					return withSource(func(src *reports.Source) error {
						content, err := reports.TeamComparisonReport(src, a, b)
						if err != nil {
							return err
						}
						return emit(fmt.Sprintf("teams-%s-vs-%s.md", reports.Slug(a), reports.Slug(b)), content)
					})
				},
			},
			{
				Name:      "venue",
				Usage:     "declared versus observed machines at a venue",
				ArgsUsage: "VENUE",
				Action: func(c *cli.Context) error {
					venue := c.Args().First()
					return withSource(func(src *reports.Source) error {
						content, err := reports.VenueReport(src, venue)
						if err != nil {
							return err
						}
						return emit(reportName("venue", venue), content)
					})
				},
			},
			{
				Name:  "pops",
				Usage: "team POPS table, or a roster summary for one team",
				Action: func(c *cli.Context) error {
					team := c.Args().First()
					return withSource(func(src *reports.Source) error {
						content, err := reports.PopsReport(src, team)
						if err != nil {
							return err
						}
						return emit(reportName("pops", team), content)
					})
				},
			},
			{
				Name:  "predictor",
				Usage: "audit whether the archive could support outcome prediction",
				Action: func(c *cli.Context) error {
					return withSource(func(src *reports.Source) error {
						content, err := reports.PredictorAuditReport(src)
						if err != nil {
							return err
						}
						return emit("predictor-audit.md", content)
					})
				},
			},
		},
	}
}

func newAliasCommand() *cli.Command {
	return &cli.Command{
		Name:  "alias",
		Usage: "maintain the machine alias table",
		Subcommands: []*cli.Command{
			{
				Name:      "add-machine",
				Usage:     "register a new machine",
				ArgsUsage: "KEY NAME [MANUFACTURER] [YEAR]",
				Action: func(c *cli.Context) error {
					if c.NArg() < 2 {
						return fmt.Errorf("add-machine needs a key and a display name")
					}
					entry := pinball.MachineEntry{
						Key:  c.Args().Get(0),
						Name: c.Args().Get(1),
					}
					if c.NArg() > 2 {
						entry.Manufacturer = c.Args().Get(2)
					}
					if c.NArg() > 3 {
						year, err := util.GetAsInteger(c.Args().Get(3))
						if err != nil {
							return fmt.Errorf("bad year %q: %w", c.Args().Get(3), err)
						}
						entry.Year = year
					}
					store, err := pinball.LoadAliasStore(pinball.GetAliasPath())
					if err != nil {
						return err
					}
					if err := store.AddMachine(entry); err != nil {
						return err
					}
					return store.Save()
				},
			},
			{
				Name:      "add-variation",
				Usage:     "attach a spelling to an existing machine",
				ArgsUsage: "KEY VARIATION...",
				Action: func(c *cli.Context) error {
					if c.NArg() < 2 {
						return fmt.Errorf("add-variation needs a key and the spelling to attach")
					}
					key := c.Args().First()
					variation := strings.Join(c.Args().Tail(), " ")
					store, err := pinball.LoadAliasStore(pinball.GetAliasPath())
					if err != nil {
						return err
					}
					if err := store.AddVariation(key, variation); err != nil {
						return err
					}
					return store.Save()
				},
			},
			{
				Name:  "list",
				Usage: "print the alias table",
				Action: func(c *cli.Context) error {
					store, err := pinball.LoadAliasStore(pinball.GetAliasPath())
					if err != nil {
						return err
					}
					type aliasRow struct {
						Key        string `md:"Key"`
						Name       string `md:"Name"`
						Variations int    `md:"Variations,right"`
					}
					rows := make([]aliasRow, 0, len(store.Entries))
					for _, e := range store.Entries {
						rows = append(rows, aliasRow{Key: e.Key, Name: e.Name, Variations: len(e.Variations)})
					}
					table, err := reports.MarkdownTable(rows)
					if err != nil {
						return err
					}
					fmt.Print(table)
					return nil
				},
			},
		},
	}
}

func newAuditCommand() *cli.Command {
	return &cli.Command{
		Name:  "audit",
		Usage: "data hygiene checks",
		Subcommands: []*cli.Command{
			{
				Name:  "aliases",
				Usage: "list unresolved machine labels with suggested homes",
				Action: func(c *cli.Context) error {
					return withSource(func(src *reports.Source) error {
						content, err := reports.AliasAuditReport(src)
						if err != nil {
							return err
						}
						return emit("alias-audit.md", content)
					})
				},
			},
		},
	}
}

func withSource(fn func(src *reports.Source) error) error {
	src, err := reports.LoadSource()
	if err != nil {
		return err
	}
	return fn(src)
}

func emit(name, content string) error {
	path, err := reports.WriteReport(pinball.GetOutputPath(), name, content)
	if err != nil {
		return err
	}
	fmt.Println(path)
	return nil
}

func emitCharts(src *reports.Source, venue string) error {
	charts, err := reports.MachineCharts(src, venue)
	if err != nil {
		return err
	}
	for name, png := range charts {
		if _, err := reports.WriteBytes(pinball.GetOutputPath(), name, png); err != nil {
			return err
		}
	}
	logger.Info("wrote charts:", len(charts))
	return nil
}

// reportName builds an output file name, folding the optional scope key in
func reportName(kind, scope string) string {
	if scope == "" {
		return kind + ".md"
	}
	return fmt.Sprintf("%s-%s.md", kind, reports.Slug(scope))
}
