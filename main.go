package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	app "github.com/rocketscienceinc/stackysides/internal"
	"github.com/rocketscienceinc/stackysides/internal/config"
)

const releaseVersion = "0.1.0"

// main - is the entry point of the application. It builds the command tree and runs the selected command.
func main() {
	defer func() {
		if err := recover(); err != nil {
			fmt.Fprintf(os.Stderr, "recovered from panic: %v\n", err)
			os.Exit(1)
		}
	}()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:           "stackysides",
		Short:         "Stacky Sides: a gravity game played from the left and right edges of the board.",
		Version:       releaseVersion,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", "./config.yml", "path to the server config file")

	cmd.AddCommand(newServeCmd(&configPath), newPlayCmd())

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetVersionTemplate("stackysides v{{.Version}}\n")

	return cmd
}

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP and WebSocket servers",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			conf := initConfig(*configPath)
			logger := initLogger(os.Stdout, conf.LogLevel)

			if err := app.RunApp(logger, conf); err != nil {
				return fmt.Errorf("app run failed: %w", err)
			}

			return nil
		},
	}
}

func newPlayCmd() *cobra.Command {
	cfg := &playConfig{}

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Create or join a game and play it from the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := cfg.validate(); err != nil {
				return err
			}

			// stdout belongs to the board
			return runPlay(cmd.Context(), cfg, initLogger(os.Stderr, cfg.logLevel), os.Stdin, os.Stdout)
		},
	}

	fs := cmd.Flags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringVar(&cfg.baseURL, "url", "http://localhost:8000/", "base URL of the server (env: STACKY_URL)")
	fs.StringVar(&cfg.gameID, "game", "", "id of the game to join (env: STACKY_GAME)")
	fs.BoolVar(&cfg.create, "new", false, "create a new game and join it (env: STACKY_NEW)")
	fs.BoolVar(&cfg.againstAI, "ai", false, "mark the new game as played against the AI (env: STACKY_AI)")
	fs.StringVar(&cfg.logLevel, "log-level", "error", "client log level (env: STACKY_LOG_LEVEL)")

	bindEnv(fs)

	return cmd
}

// bindEnv lets STACKY_* variables fill in flags that were not set on the command line.
func bindEnv(fs *pflag.FlagSet) {
	v := viper.New()
	v.SetEnvPrefix("STACKY")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})
}

// initialize config.
func initConfig(path string) *config.Config {
	if !filepath.IsAbs(path) {
		baseDir, err := os.Getwd()
		if err != nil {
			panic(fmt.Errorf("failed to get current directory: %w", err))
		}

		path = filepath.Join(baseDir, path)
	}

	return config.MustLoad(path)
}

// initialize logger.
func initLogger(w io.Writer, logLevel string) *slog.Logger {
	var level slog.Level

	switch logLevel {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}
