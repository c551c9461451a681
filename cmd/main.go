package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"go.ember.dev/internal/config"
	ember "go.ember.dev/pkg"
)

var (
	cfgFile string
	verbose bool

	cfg    *config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "ember",
	Short: "Tokenize and build ember expressions",
	Long: `ember is the front-end toolkit for a small expression language.

  tokens  - print the token stream of a source file
  build   - build a YAML statement document and print it as source or LLVM IR`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = loadConfig()
		if err != nil {
			return err
		}

		logger = newLogger(cfg.LogLevel)
		logger.Debug("configuration loaded",
			"file", cfgFile,
			"builder", cfg.Builder,
			"emit", cfg.Emit)

		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (.toml, .yaml or .yml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(tokensCmd, buildCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		printError(err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	if cfgFile == "" {
		return config.Default(), nil
	}

	return config.Load(cfgFile)
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		lvl = slog.LevelInfo
	}

	if verbose {
		lvl = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

func printError(err error) {
	var (
		invalidInput *ember.InvalidInputError
		invalidArg   *ember.InvalidArgumentError
		duplicate    *ember.DuplicateKeyError
		undefined    *ember.UndefinedVariableError
		unknownOp    *ember.UnknownOperatorError
	)

	switch {
	case errors.As(err, &invalidInput):
		fmt.Fprintln(os.Stderr, "Invalid input:", invalidInput)
	case errors.As(err, &invalidArg):
		fmt.Fprintln(os.Stderr, "Invalid argument:", invalidArg)
	case errors.As(err, &duplicate):
		fmt.Fprintln(os.Stderr, "Duplicate label:", duplicate.Key)
	case errors.As(err, &undefined):
		fmt.Fprintln(os.Stderr, "Undefined variable:", undefined.Name)
	case errors.As(err, &unknownOp):
		fmt.Fprintln(os.Stderr, "Unknown operator:", unknownOp.Op)
	default:
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
}
