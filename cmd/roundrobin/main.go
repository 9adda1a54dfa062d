package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/camzach/roundrobin/internal/config"
	"github.com/camzach/roundrobin/internal/document"
	"github.com/camzach/roundrobin/internal/strategy"
	"github.com/camzach/roundrobin/internal/validator"
)

const defaultConfigFile = "league.yaml"

func resolveConfigPath(configFlag string) (string, error) {
	if configFlag != "" {
		return configFlag, nil
	}
	if _, err := os.Stat(defaultConfigFile); err == nil {
		return defaultConfigFile, nil
	}
	return "", fmt.Errorf("no config file found. Either create %s in the current directory or pass --config", defaultConfigFile)
}

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		PadLevelText:     true,
	})
	logrus.SetLevel(logrus.InfoLevel)

	var verbose bool
	rootCmd := &cobra.Command{
		Use:   "roundrobin",
		Short: "Round-robin league schedule generator",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			}
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log every home/away repair")

	var initOutputPath string
	initCmd := &cobra.Command{
		Use:          "init",
		Short:        "Create a starter league.yaml in the current directory",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(initOutputPath)
		},
	}
	initCmd.Flags().StringVarP(&initOutputPath, "output", "o", defaultConfigFile, "Output path for the config file")

	scheduleCmd := &cobra.Command{
		Use:   "schedule",
		Short: "Generate and validate schedules",
	}

	var configFile string
	scheduleCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to config file (default: league.yaml in current directory)")

	var outputFile string
	generateCmd := &cobra.Command{
		Use:          "generate",
		Short:        "Generate a schedule from a config file",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, err := resolveConfigPath(configFile)
			if err != nil {
				return err
			}
			return runGenerate(configPath, outputFile)
		},
	}
	generateCmd.Flags().StringVarP(&outputFile, "output", "o", "schedule.yaml", "Output schedule file path")

	validateCmd := &cobra.Command{
		Use:          "validate <schedule.yaml>",
		Short:        "Validate a schedule against config rules",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, err := resolveConfigPath(configFile)
			if err != nil {
				return err
			}
			return runValidate(configPath, args[0])
		},
	}

	scheduleCmd.AddCommand(generateCmd, validateCmd)
	rootCmd.AddCommand(initCmd, scheduleCmd)
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

const configTemplate = `# League Configuration
# ====================
# This file defines the league to build a round-robin schedule for.
# Any key can be overridden from the environment with an RR_ prefix,
# e.g. RR_STRATEGY=double_round_robin or RR_GUIDELINES__MAX_STREAK=3.

league: "Old World Classic"

# Teams in the league. Names must be unique. The order matters only as the
# starting seed: the same list always produces the same schedule. With an
# odd number of teams one team sits out (has a bye) each round.
teams:
  - Reikland Reavers
  - Bogrot's Bruisers
  - Grudgebearers
  - Lustria Lizards
  - Athelorn Avengers
  - Middenheim Marauders

# Strategy determines how often teams meet.
# "round_robin" plays every opponent once, with home and away games split
# as evenly as possible (exactly even when the team count is odd).
# "double_round_robin" plays every opponent twice, once at each venue.
strategy: round_robin

# Guidelines are soft constraints. Violations are reported as warnings.
guidelines:
  max_streak: 2   # Longest run of consecutive home (or away) games; 0 disables
`

func runGenerate(configPath, outputPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	strat, err := strategy.Get(cfg.Strategy, logrus.StandardLogger())
	if err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"teams":    len(cfg.Teams),
		"strategy": cfg.Strategy,
	}).Debug("generating schedule")

	rounds, err := strat.Generate(cfg.Teams)
	if err != nil {
		return fmt.Errorf("generating schedule: %w", err)
	}

	fmt.Printf("✓ %d games scheduled in %d rounds\n", len(rounds.Fixtures()), len(rounds))

	byes := make(map[string]int)
	for _, b := range rounds.Byes(cfg.Teams) {
		if b != "" {
			byes[b]++
		}
	}
	records := rounds.Records()

	fmt.Println("\nPer Team Metrics:")
	fmt.Printf("  %-22s %6s %5s %5s %4s\n", "Team", "Games", "Home", "Away", "Bye")
	for _, team := range cfg.Teams {
		r := records[team]
		fmt.Printf("  %-22s %6d %5d %5d %4d\n", team, r.Games(), r.Home, r.Away, byes[team])
	}

	var warnings []validator.Violation
	for _, v := range validator.Check(cfg.Teams, strat.Legs(), rounds, cfg.Guidelines) {
		if v.Type == "error" {
			return fmt.Errorf("generated schedule is invalid: %s", v.Message)
		}
		warnings = append(warnings, v)
	}
	if len(warnings) > 0 {
		fmt.Printf("\nGuideline violations (%d):\n", len(warnings))
		for _, w := range warnings {
			fmt.Printf("  ⚠ %s\n", w.Message)
		}
	} else {
		fmt.Println("\n✓ No guideline violations")
	}

	if err := document.WriteFile(outputPath, document.New(cfg, rounds)); err != nil {
		return fmt.Errorf("saving schedule: %w", err)
	}

	fmt.Printf("\n✓ Schedule saved to %s\n", outputPath)
	return nil
}

func runValidate(configPath, schedulePath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
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
			fmt.Printf("⚠ Guideline violation: %s\n", v.Message)
		}
	}

	fmt.Printf("\nValidation complete: %d rule violations, %d guideline violations\n", errors, warnings)

	if errors > 0 {
		return fmt.Errorf("%d constraint violations found", errors)
	}
	return nil
}
