package main

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"throng/internal/config"
	"throng/internal/score"
	"throng/internal/ui"
)

var (
	configPath string
	scoresPath string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "throng",
		Short:         "Keep your pet alive while the throng closes in",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runPlay,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config.yaml (empty = use defaults)")
	rootCmd.PersistentFlags().StringVar(&scoresPath, "scores", "", "Path to the score table (empty = score.path from config, then ~/.config/throng/scores.toml)")
	rootCmd.PersistentFlags().String("log", "", "Write the debug log of the game to this file")

	rootCmd.AddCommand(newPlayCmd())
	rootCmd.AddCommand(newSimCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newScoresCmd())
	return rootCmd
}

func newPlayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Play in the terminal (default)",
		Args:  cobra.NoArgs,
		RunE:  runPlay,
	}
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	path, table, err := loadScores(cfg)
	if err != nil {
		return err
	}

	// The terminal belongs to the game, so logs go to a file or nowhere.
	logPath, _ := cmd.Flags().GetString("log")
	if logPath != "" {
		f, err := tea.LogToFile(logPath, "throng")
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
		slog.SetDefault(slog.New(slog.NewTextHandler(f, nil)))
	} else {
		slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	}

	seed := uint64(time.Now().UnixNano())
	model := ui.NewModel(ui.Options{
		Config:    cfg,
		Rand:      rand.New(rand.NewPCG(seed, seed>>1)),
		Scores:    table,
		ScorePath: path,
	})

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}

func newSimCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sim",
		Short: "Run a headless session with an autopilot and print the result",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			seconds, _ := cmd.Flags().GetFloat64("seconds")
			step, _ := cmd.Flags().GetFloat64("step")
			seed, _ := cmd.Flags().GetUint64("seed")
			csvPath, _ := cmd.Flags().GetString("csv")
			record, _ := cmd.Flags().GetBool("record")
			if seed == 0 {
				seed = uint64(time.Now().UnixNano())
			}

			slog.SetDefault(slog.New(slog.NewJSONHandler(cmd.ErrOrStderr(), nil)))

			opts := simOptions{Seconds: seconds, Step: step, Seed: seed}
			switch csvPath {
			case "":
			case "-":
				opts.CSV = cmd.OutOrStdout()
			default:
				f, err := os.Create(csvPath)
				if err != nil {
					return fmt.Errorf("failed to create csv file: %w", err)
				}
				defer f.Close()
				opts.CSV = f
			}

			run, err := runSim(cfg, opts)
			if err != nil {
				return err
			}
			if csvPath != "-" {
				fmt.Fprintln(cmd.OutOrStdout(), formatRun(run))
			}

			if !record {
				return nil
			}
			path, table, err := loadScores(cfg)
			if err != nil {
				return err
			}
			if rank := table.Record(run, cfg.Score.Keep); rank > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Ranked #%d\n", rank)
			}
			return table.Save(path)
		},
	}
	cmd.Flags().Float64("seconds", 300, "Simulated seconds to run")
	cmd.Flags().Float64("step", 0, "Fixed frame step in seconds (0 = use config)")
	cmd.Flags().Uint64("seed", 0, "RNG seed (0 = time-based)")
	cmd.Flags().String("csv", "", "Write window stats as CSV to this file (- = stdout)")
	cmd.Flags().Bool("record", false, "Add the run to the score table")
	return cmd
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if out, _ := cmd.Flags().GetString("write"); out != "" {
				return cfg.WriteYAML(out)
			}
			data, err := cfg.Marshal()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().String("write", "", "Write the configuration to this file instead of stdout")
	return cmd
}

func newScoresCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scores",
		Short: "Show the high score table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			_, table, err := loadScores(cfg)
			if err != nil {
				return err
			}
			if plain, _ := cmd.Flags().GetBool("plain"); plain {
				fmt.Fprint(cmd.OutOrStdout(), ui.FormatScores(table))
				return nil
			}
			return ui.DisplayScores(table)
		},
	}
	cmd.Flags().Bool("plain", false, "Print the table instead of opening the viewer")
	return cmd
}

// loadScores reads the score table from --scores, the configured path or the
// default location, in that order.
func loadScores(cfg *config.Config) (string, *score.Table, error) {
	path := scoresPath
	if path == "" {
		path = cfg.Score.Path
	}
	path, err := score.ResolvePath(path)
	if err != nil {
		return "", nil, err
	}
	table, err := score.Load(path)
	if err != nil {
		return "", nil, err
	}
	return path, table, nil
}
