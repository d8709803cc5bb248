package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/derekprior/league/internal/config"
	"github.com/derekprior/league/internal/excel"
	"github.com/derekprior/league/internal/league"
	"github.com/derekprior/league/internal/logging"
	"github.com/derekprior/league/internal/playoffs"
	"github.com/derekprior/league/internal/schedule"
	"github.com/derekprior/league/internal/standings"
	"github.com/derekprior/league/internal/validator"
)

const defaultConfigFile = "config.yaml"

// app carries what every command needs once flags and environment are read.
type app struct {
	settings   *config.Settings
	logger     *slog.Logger
	configFlag string
}

func (a *app) resolveConfigPath() (string, error) {
	if a.configFlag != "" {
		return a.configFlag, nil
	}
	if a.settings.ConfigPath != "" {
		return a.settings.ConfigPath, nil
	}
	if _, err := os.Stat(defaultConfigFile); err == nil {
		return defaultConfigFile, nil
	}
	return "", fmt.Errorf("no config file found. Either create %s in the current directory, set LEAGUE_CONFIG, or pass --config", defaultConfigFile)
}

func (a *app) loadConfig() (*config.Config, error) {
	path, err := a.resolveConfigPath()
	if err != nil {
		return nil, err
	}
	cfg, err := config.LoadFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	a.logger.Debug("config loaded", logging.FieldPath, path, logging.FieldTeams, len(cfg.Teams))
	return cfg, nil
}

func main() {
	settings, err := config.LoadSettings(".env")
	if err != nil {
		fmt.Fprintf(os.Stderr, "✗ %s\n", err)
		os.Exit(1)
	}
	a := &app{
		settings: settings,
		logger:   logging.NewLogger(os.Stderr, settings.LogLevel, settings.LogFormat),
	}

	rootCmd := &cobra.Command{
		Use:   "league",
		Short: "Basketball league schedule, standings and playoff generator",
	}
	rootCmd.PersistentFlags().StringVar(&a.configFlag, "config", "", "Path to config file (default: $LEAGUE_CONFIG or config.yaml in current directory)")

	var initOutputPath string
	initCmd := &cobra.Command{
		Use:          "init",
		Short:        "Create a starter config.yaml in the current directory",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(initOutputPath)
		},
	}
	initCmd.Flags().StringVarP(&initOutputPath, "output", "o", defaultConfigFile, "Output path for the config file")

	scheduleCmd := &cobra.Command{
		Use:   "schedule",
		Short: "Generate, validate and recalculate schedules",
	}

	var outputFile string
	generateCmd := &cobra.Command{
		Use:          "generate",
		Short:        "Generate a season schedule from a config file",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runGenerate(outputFile)
		},
	}
	generateCmd.Flags().StringVarP(&outputFile, "output", "o", "schedule.xlsx", "Output Excel file path")

	validateCmd := &cobra.Command{
		Use:          "validate <schedule.xlsx>",
		Short:        "Validate a schedule against the config",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runValidate(args[0])
		},
	}

	var recalcOutput string
	recalcCmd := &cobra.Command{
		Use:          "recalc <schedule.xlsx>",
		Short:        "Reschedule unplayed games after the roster changed",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := recalcOutput
			if out == "" {
				out = args[0]
			}
			return a.runRecalc(args[0], out)
		},
	}
	recalcCmd.Flags().StringVarP(&recalcOutput, "output", "o", "", "Output Excel file path (default: overwrite the input)")

	standingsCmd := &cobra.Command{
		Use:          "standings <schedule.xlsx>",
		Short:        "Compute standings from finished games",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runStandings(args[0])
		},
	}

	playoffsCmd := &cobra.Command{
		Use:          "playoffs <schedule.xlsx>",
		Short:        "Seed the playoffs from the standings and schedule the series",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runPlayoffs(args[0])
		},
	}

	scheduleCmd.AddCommand(generateCmd, validateCmd, recalcCmd)
	rootCmd.AddCommand(initCmd, scheduleCmd, standingsCmd, playoffsCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runInit(outputPath string) error {
	if _, err := os.Stat(outputPath); err == nil {
		return fmt.Errorf("%s already exists; remove it first or use -o to write elsewhere", outputPath)
	}

	if err := os.WriteFile(outputPath, []byte(configTemplate), 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Printf("✓ Created %s\n", outputPath)
	return nil
}

const configTemplate = `# League Season Configuration
# ===========================
# This file defines the parameters for generating a basketball schedule.

league: "Liga Municipal de Baloncesto"

# Season defines when and where regular-season games are played. Games are
# placed in order, filling every time slot of each playing day before moving
# to the next one.
season:
  start_date: "2026-01-10"

  # Days of the week games may be played on. Full names or three-letter
  # abbreviations are accepted.
  weekdays: [saturday, sunday]

  # Start times, in 24-hour format, filled in this order on each playing day.
  # With one slot per game of a round, every round fits on a single day.
  time_slots: ["16:00", "18:00", "20:15"]

  # Optional. Leave out when teams play at their own courts.
  venue: "Pabellón Municipal"

# Team names must be unique.
teams:
  - Bulls
  - Celtics
  - Knicks
  - Lakers
  - Nets
  - Warriors

# Strategy determines how matchups are generated.
# "double_round_robin" plays every opponent twice, once at home and once away.
# "single_round_robin" plays every opponent once.
strategy: double_round_robin

# Playoffs are best-of-three series between the top teams in the standings.
# Anything left out falls back to the season settings. Without a start_date
# the playoffs begin the day after the last regular-season game.
playoffs:
  weekdays: [saturday, sunday]
  time_slots: ["17:00", "19:00"]
`

func (a *app) runGenerate(outputPath string) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	strat, err := cfg.MatchupStrategy()
	if err != nil {
		return err
	}

	fmt.Printf("Scheduling %d teams...\n", len(cfg.Teams))
	result, err := schedule.Schedule(cfg.Calendar(), strat, cfg.Teams)
	if err != nil {
		return err
	}
	a.logger.Debug("rounds generated", logging.FieldStrategy, cfg.Strategy, logging.FieldRounds, result.Rounds)
	fmt.Printf("✓ All %d games scheduled in %d rounds\n", len(result.Games), result.Rounds)

	printMetrics(cfg.Teams, result.TeamMetrics)

	f, err := excel.Generate(cfg.Teams, result.Games)
	if err != nil {
		return fmt.Errorf("generating Excel: %w", err)
	}
	if err := f.SaveAs(outputPath); err != nil {
		return fmt.Errorf("saving file: %w", err)
	}
	a.logger.Info("schedule written", logging.FieldPath, outputPath, logging.FieldGames, len(result.Games))

	fmt.Printf("\n✓ Schedule saved to %s\n", outputPath)
	return nil
}

func printMetrics(teams []string, metrics map[string]*schedule.TeamMetrics) {
	fmt.Println("\nPer Team Metrics:")
	fmt.Printf("  %-20s %6s %5s %5s %11s %11s\n", "Team", "Games", "Home", "Away", "First", "Last")
	for _, team := range teams {
		m := metrics[team]
		fmt.Printf("  %-20s %6d %5d %5d %11s %11s\n", team, m.Games, m.Home, m.Away,
			m.First.Format("01/02/2006"), m.Last.Format("01/02/2006"))
	}
}

func (a *app) runValidate(schedulePath string) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}

	violations, err := validator.Validate(cfg, schedulePath)
	if err != nil {
		return fmt.Errorf("validating: %w", err)
	}

	errors := 0
	warnings := 0
	for _, v := range violations {
		switch v.Type {
		case "error":
			errors++
			fmt.Printf("✗ Rule violation: %s\n", v.Message)
		case "warning":
			warnings++
			fmt.Printf("⚠ Warning: %s\n", v.Message)
		}
	}

	fmt.Printf("\nValidation complete: %d rule violations, %d warnings\n", errors, warnings)

	// Regenerate team sheets from master schedule
	if err := excel.UpdateTeamSheets(schedulePath, cfg.Teams); err != nil {
		return fmt.Errorf("updating team sheets: %w", err)
	}
	fmt.Printf("✓ Team sheets updated in %s\n", schedulePath)

	if errors > 0 {
		return fmt.Errorf("%d constraint violations found", errors)
	}
	return nil
}

func (a *app) runRecalc(schedulePath, outputPath string) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	strat, err := cfg.MatchupStrategy()
	if err != nil {
		return err
	}

	games, err := excel.ReadGames(schedulePath)
	if err != nil {
		return err
	}
	hadStandings, err := excel.HasSheet(schedulePath, excel.StandingsSheet)
	if err != nil {
		return err
	}
	hadPlayoffs, err := excel.HasSheet(schedulePath, excel.PlayoffsSheet)
	if err != nil {
		return err
	}

	r, err := schedule.Recalculate(games, cfg.Teams, strat, cfg.Calendar())
	if err != nil {
		return err
	}
	a.logger.Info("schedule recalculated",
		"preserved", len(r.Preserved),
		"discarded", len(r.Discarded),
		logging.FieldGames, len(r.New))

	fmt.Printf("✓ Kept %d finished games\n", len(r.Preserved))
	fmt.Printf("✓ Dropped %d unplayed games\n", len(r.Discarded))
	if len(r.New) == 0 {
		fmt.Println("⚠ Nothing left to schedule")
	} else {
		fmt.Printf("✓ Scheduled %d games from %s to %s\n", len(r.New),
			r.New[0].DateTime.Format("01/02/2006"), schedule.LastDate(r.New).Format("01/02/2006"))
	}

	all := r.Games()
	printMetrics(cfg.Teams, schedule.BuildMetrics(cfg.Teams, all))

	f, err := excel.Generate(cfg.Teams, all)
	if err != nil {
		return fmt.Errorf("generating Excel: %w", err)
	}
	if err := f.SaveAs(outputPath); err != nil {
		return fmt.Errorf("saving file: %w", err)
	}
	fmt.Printf("\n✓ Schedule saved to %s\n", outputPath)

	// Finished games survive a recalculation, so the table can be rebuilt.
	// The bracket depends on the roster and has to be seeded again.
	if hadStandings {
		rows := standings.Calculate(league.Results(r.Preserved), cfg.Teams...)
		if err := excel.WriteStandings(outputPath, rows); err != nil {
			return fmt.Errorf("writing standings: %w", err)
		}
		fmt.Printf("✓ Standings rebuilt in %s\n", outputPath)
	}
	if hadPlayoffs {
		fmt.Printf("⚠ Playoffs sheet dropped; run \"league playoffs %s\" to seed it again\n", outputPath)
	}
	return nil
}

func (a *app) standings(schedulePath string, cfg *config.Config) ([]league.Game, []standings.Row, error) {
	games, err := excel.ReadGames(schedulePath)
	if err != nil {
		return nil, nil, err
	}
	results := league.Results(games)
	a.logger.Debug("results read", logging.FieldPath, schedulePath, logging.FieldGames, len(results))
	return games, standings.Calculate(results, cfg.Teams...), nil
}

func (a *app) runStandings(schedulePath string) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	_, rows, err := a.standings(schedulePath, cfg)
	if err != nil {
		return err
	}

	printStandings(rows)

	if err := excel.WriteStandings(schedulePath, rows); err != nil {
		return fmt.Errorf("writing standings: %w", err)
	}
	fmt.Printf("\n✓ Standings saved to %s\n", schedulePath)
	return nil
}

func printStandings(rows []standings.Row) {
	fmt.Printf("  %3s %-20s %3s %3s %3s %5s %5s %5s %4s\n", "#", "Team", "GP", "W", "L", "PF", "PA", "+/-", "Pts")
	for i, r := range rows {
		fmt.Printf("  %3d %-20s %3d %3d %3d %5d %5d %+5d %4d\n", i+1, r.Team,
			r.GamesPlayed, r.Wins, r.Losses, r.PointsFor, r.PointsAgainst, r.PointDifferential, r.RankingPoints)
	}
}

func (a *app) runPlayoffs(schedulePath string) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	games, rows, err := a.standings(schedulePath, cfg)
	if err != nil {
		return err
	}

	q, err := playoffs.Qualify(playoffs.OnRoster(rows, cfg.Teams), len(cfg.Teams))
	if err != nil {
		return err
	}
	for _, r := range q.Eliminated {
		fmt.Printf("⚠ %s is eliminated\n", r.Team)
	}

	series, err := playoffs.Bracket(standings.Teams(q.Qualified))
	if err != nil {
		return err
	}
	fmt.Println("\nBracket:")
	for _, s := range series {
		fmt.Printf("  Series %d: %s vs %s\n", s.Number, s.HigherSeed, s.LowerSeed)
	}

	playoffGames, err := playoffs.Sequence(series, cfg.PlayoffCalendar(schedule.LastDate(games)))
	if err != nil {
		return err
	}
	a.logger.Info("playoffs scheduled", logging.FieldSeries, len(series), logging.FieldGames, len(playoffGames))

	if err := excel.WritePlayoffs(schedulePath, series, playoffGames); err != nil {
		return fmt.Errorf("writing playoffs: %w", err)
	}
	fmt.Printf("\n✓ %d playoff games saved to %s\n", len(playoffGames), schedulePath)
	return nil
}
