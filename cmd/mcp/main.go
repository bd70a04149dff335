package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/richard-senior/pinstats/internal/logger"
	"github.com/richard-senior/pinstats/pkg/reports"
	"github.com/richard-senior/pinstats/pkg/util/pinball"
)

type ResolveMachineArgs struct {
	Label string `json:"label" jsonschema:"Machine label as it appears in match data (required)"`
}

type MachineStatsArgs struct {
	Machine string `json:"machine" jsonschema:"Machine key or any known spelling (required)"`
	Venue   string `json:"venue,omitempty" jsonschema:"Restrict to games at this venue key"`
}

type TeamStatsArgs struct {
	Team string `json:"team" jsonschema:"Team key, e.g. DTP (required)"`
}

type VenueReportArgs struct {
	Venue string `json:"venue" jsonschema:"Venue key (required)"`
}

type ListMachinesArgs struct{}

type AliasAuditArgs struct{}

type machineStats struct {
	Key         string             `json:"key"`
	Name        string             `json:"name"`
	Games       int                `json:"games"`
	Low         int                `json:"low"`
	High        int                `json:"high"`
	Mean        float64            `json:"mean"`
	Median      float64            `json:"median"`
	Percentiles map[string]float64 `json:"percentiles"`
	HomePoints  int                `json:"home_points"`
	AwayPoints  int                `json:"away_points"`
}

type teamStats struct {
	Key         string  `json:"key"`
	Matches     int     `json:"matches"`
	Games       int     `json:"games"`
	Points      int     `json:"points"`
	POPS        float64 `json:"pops"`
	MedianScore float64 `json:"median_score"`
}

type machineListing struct {
	Key        string   `json:"key"`
	Name       string   `json:"name"`
	Variations []string `json:"variations,omitempty"`
	Games      int      `json:"games"`
}

func main() {
	debug := flag.Bool("debug", false, "Enable debug logging")
	configPath := flag.String("config", "pinstats.yaml", "Path to the configuration file")
	flag.Parse()

	// Stdout carries the protocol, so logs must go to the file
	logger.SetShowDateTime(true)
	logger.SetLogOutput('f')
	if *debug {
		logger.SetLevel(logger.DEBUG)
	}

	if err := pinball.LoadConfigFile(*configPath); err != nil {
		logger.Fatal("failed to load configuration:", err)
	}
	src, err := reports.LoadSource()
	if err != nil {
		logger.Fatal("failed to load archive:", err)
	}
	logger.Info("pinstats MCP server starting with", src.Archive.Len(), "matches")

	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "pinstats",
			Version: "1.0.0",
		},
		nil,
	)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "resolve_machine",
		Description: "Resolve a raw machine label to its canonical key and display name",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args ResolveMachineArgs) (*mcp.CallToolResult, any, error) {
		if args.Label == "" {
			return toolError(fmt.Errorf("label is required")), nil, nil
		}
		key, name := src.Aliases.Resolve(args.Label)
		return toolJSON(map[string]any{
			"input":    args.Label,
			"key":      key,
			"name":     name,
			"resolved": src.Aliases.Resolved(args.Label),
		})
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "machine_stats",
		Description: "Score distribution and home/away points for one machine",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args MachineStatsArgs) (*mcp.CallToolResult, any, error) {
		if args.Machine == "" {
			return toolError(fmt.Errorf("machine is required")), nil, nil
		}
		out, err := buildMachineStats(src, args.Machine, args.Venue)
		if err != nil {
			return toolError(err), nil, nil
		}
		return toolJSON(out)
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "team_stats",
		Description: "Season summary for one team: games, points won, POPS, median score",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args TeamStatsArgs) (*mcp.CallToolResult, any, error) {
		if args.Team == "" {
			return toolError(fmt.Errorf("team is required")), nil, nil
		}
		out, err := buildTeamStats(src, args.Team)
		if err != nil {
			return toolError(err), nil, nil
		}
		return toolJSON(out)
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "venue_report",
		Description: "Markdown reconciliation of a venue's declared and observed machines",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args VenueReportArgs) (*mcp.CallToolResult, any, error) {
		if args.Venue == "" {
			return toolError(fmt.Errorf("venue is required")), nil, nil
		}
		content, err := reports.VenueReport(src, args.Venue)
		if err != nil {
			return toolError(err), nil, nil
		}
		return toolText(content)
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_machines",
		Description: "All known machines with their spellings and counted game totals",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args ListMachinesArgs) (*mcp.CallToolResult, any, error) {
		return toolJSON(buildMachineListing(src))
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "alias_audit",
		Description: "Markdown list of unresolved machine labels with suggested homes",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args AliasAuditArgs) (*mcp.CallToolResult, any, error) {
		content, err := reports.AliasAuditReport(src)
		if err != nil {
			return toolError(err), nil, nil
		}
		return toolText(content)
	})

	logger.Info("pinstats MCP server listening on stdio")
	if err := server.Run(context.Background(), &mcp.StdioTransport{}); err != nil {
		logger.Error("server error:", err)
		os.Exit(1)
	}
	logger.Info("pinstats MCP server shutting down")
}

func buildMachineStats(src *reports.Source, machine, venue string) (*machineStats, error) {
	key, name := src.Aliases.Resolve(machine)
	f := src.Filter
	f.Venue = venue

	acc := pinball.NewAccumulators().Get(key)
	for _, m := range src.Archive.Select(f) {
		for _, r := range m.SortedRounds() {
			for i := range r.Games {
				g := &r.Games[i]
				gKey, _ := src.Aliases.Resolve(g.Machine)
				if gKey != key {
					continue
				}
				acc.AccumulateMachine(g, r.N)
			}
		}
	}
	if acc.Games == 0 {
		return nil, fmt.Errorf("no counted games for machine %s", key)
	}

	low, _ := pinball.Min(acc.Scores)
	high, _ := pinball.Max(acc.Scores)
	mean, _ := pinball.Mean(acc.Scores)
	median, _ := pinball.Median(acc.Scores)
	pcts := map[string]float64{}
	for _, p := range pinball.GetPercentiles() {
		v, err := pinball.Percentile(acc.Scores, p)
		if err != nil {
			continue
		}
		pcts[fmt.Sprintf("p%d", int(p*100))] = v
	}
	return &machineStats{
		Key:         key,
		Name:        name,
		Games:       acc.Games,
		Low:         low,
		High:        high,
		Mean:        mean,
		Median:      median,
		Percentiles: pcts,
		HomePoints:  acc.HomePoints,
		AwayPoints:  acc.AwayPoints,
	}, nil
}

func buildTeamStats(src *reports.Source, teamKey string) (*teamStats, error) {
	f := src.Filter
	f.Team = teamKey
	matches := src.Archive.Select(f)
	if len(matches) == 0 {
		return nil, fmt.Errorf("no matches for team %s in the current selection", teamKey)
	}

	acc := pinball.NewAccumulators().Get(teamKey)
	for _, m := range matches {
		side, ok := m.SideOf(teamKey)
		if !ok {
			continue
		}
		for _, r := range m.SortedRounds() {
			for i := range r.Games {
				acc.AccumulateTeam(&r.Games[i], r.N, side)
			}
		}
	}
	if acc.Games == 0 {
		return nil, fmt.Errorf("no counted games for team %s", teamKey)
	}
	median, _ := pinball.Median(acc.Scores)
	return &teamStats{
		Key:         teamKey,
		Matches:     len(matches),
		Games:       acc.Games,
		Points:      acc.EarnedPoints,
		POPS:        acc.POPS(),
		MedianScore: median,
	}, nil
}

func buildMachineListing(src *reports.Source) []machineListing {
	counts := pinball.NewAccumulators()
	for _, m := range src.Archive.Select(src.Filter) {
		for _, r := range m.SortedRounds() {
			for i := range r.Games {
				g := &r.Games[i]
				if !g.Done {
					continue
				}
				key, _ := src.Aliases.Resolve(g.Machine)
				counts.Get(key).AccumulateMachine(g, r.N)
			}
		}
	}
	out := make([]machineListing, 0, src.Aliases.Len())
	for _, key := range src.Aliases.Keys() {
		entry, _ := src.Aliases.Entry(key)
		games := 0
		if acc, ok := counts.Lookup(key); ok {
			games = acc.Games
		}
		out = append(out, machineListing{
			Key:        key,
			Name:       entry.Name,
			Variations: entry.Variations,
			Games:      games,
		})
	}
	return out
}

func toolJSON(v any) (*mcp.CallToolResult, any, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return toolError(err), nil, nil
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(b)},
		},
	}, nil, nil
}

func toolText(s string) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: s},
		},
	}, nil, nil
}

func toolError(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf("error: %v", err)},
		},
	}
}
