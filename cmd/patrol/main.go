package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/katalvlaran/patrol/astar"
	"github.com/katalvlaran/patrol/grid"
	"github.com/katalvlaran/patrol/internal/app"
	pkgconfig "github.com/katalvlaran/patrol/internal/config"
	"github.com/katalvlaran/patrol/internal/render"
)

var version = "dev"

func loadConfig(cmd *cli.Command) (*pkgconfig.Config, error) {
	cfg := pkgconfig.NewDefaultConfig()
	if err := pkgconfig.LoadOrDefault(cmd.String("config"), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

func serve(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := app.Run(ctx, app.WithConfig(cfg), app.WithVersion(version)); err != nil {
		return fmt.Errorf("app run error: %w", err)
	}

	return nil
}

func serveMCP(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := app.RunMCP(ctx, app.WithConfig(cfg), app.WithVersion(version)); err != nil {
		return fmt.Errorf("mcp run error: %w", err)
	}

	return nil
}

// parseCell reads "row,col".
func parseCell(s string) (grid.Cell, error) {
	rs, cs, ok := strings.Cut(s, ",")
	if !ok {
		return grid.Cell{}, fmt.Errorf("cell %q: want row,col", s)
	}
	row, err := strconv.Atoi(strings.TrimSpace(rs))
	if err != nil {
		return grid.Cell{}, fmt.Errorf("cell %q: %w", s, err)
	}
	col, err := strconv.Atoi(strings.TrimSpace(cs))
	if err != nil {
		return grid.Cell{}, fmt.Errorf("cell %q: %w", s, err)
	}

	return grid.Cell{Row: row, Col: col}, nil
}

func findPath(_ context.Context, cmd *cli.Command) error {
	g, err := app.LoadMap(cmd.String("map"))
	if err != nil {
		return err
	}
	from, err := parseCell(cmd.String("from"))
	if err != nil {
		return err
	}
	to, err := parseCell(cmd.String("to"))
	if err != nil {
		return err
	}

	res, err := astar.FindPath(g, from, to, astar.WithStepBudget(int(cmd.Int("budget"))))
	if err != nil {
		return err
	}

	r := render.New(cmd.Bool("color"))
	switch {
	case res.Found:
		fmt.Printf("route of %d steps from %v to %v (%d cells expanded)\n\n", res.Cost(), from, to, res.Expanded)
		fmt.Println(r.Map(g, res.Path, nil))
		fmt.Println()
		fmt.Println(r.Legend())
	case res.Exhausted:
		fmt.Printf("no route within the step budget (%d cells expanded)\n", res.Expanded)
	default:
		fmt.Printf("%v is unreachable from %v\n", to, from)
	}

	return nil
}

func demo(ctx context.Context, cmd *cli.Command) error {
	_, err := app.Demo(ctx, os.Stdout, cmd.Bool("color"), time.Now())
	return err
}

func colorFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  "color",
		Usage: "Render maps with colors and a frame",
	}
}

func main() {
	cmd := &cli.Command{
		Name:    "patrol",
		Usage:   "Exploration planner for an inspection robot: picks the next zone and routes to it",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file",
				DefaultText: "config/config.yaml",
				Value:       "config/config.yaml",
				Sources:     cli.EnvVars("PATROL_CONFIG"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the HTTP advisor service",
				Action: serve,
			},
			{
				Name:   "mcp",
				Usage:  "Serve planner tools over MCP on stdio",
				Action: serveMCP,
			},
			{
				Name:   "path",
				Usage:  "Find and draw the shortest route between two cells",
				Action: findPath,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "map",
						Usage: "Map file (.txt, .json, .yaml); empty for the built-in 5x5 map",
					},
					&cli.StringFlag{
						Name:     "from",
						Usage:    "Start cell as row,col",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "to",
						Usage:    "Goal cell as row,col",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "budget",
						Usage: "Maximum cells to expand; 0 for no limit",
					},
					colorFlag(),
				},
			},
			{
				Name:   "demo",
				Usage:  "Replay a short patrol on the built-in map",
				Action: demo,
				Flags:  []cli.Flag{colorFlag()},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
