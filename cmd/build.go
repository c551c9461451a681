package main

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"go.ember.dev/internal/config"
	ember "go.ember.dev/pkg"
)

var (
	builderFlag string
	emitFlag    string
)

var buildCmd = &cobra.Command{
	Use:   "build [document.yaml]",
	Short: "Build a statement document and print it",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if builderFlag != "" {
			cfg.Builder = builderFlag
		}
		if emitFlag != "" {
			cfg.Emit = emitFlag
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		in, closeFn, err := openInput(args)
		if err != nil {
			return err
		}
		defer closeFn()

		trace, closeTrace, err := cfg.OpenTrace()
		if err != nil {
			return err
		}
		defer func() { _ = closeTrace() }()

		return build(in, cmd.OutOrStdout(), cfg, trace)
	},
}

func init() {
	buildCmd.Flags().StringVar(&builderFlag, "builder", "", "node builder: production, tracing or null")
	buildCmd.Flags().StringVar(&emitFlag, "emit", "", "output: source or llvm")
}

func build(in io.Reader, out io.Writer, c *config.Config, trace io.Writer) error {
	stmt, err := ember.LoadDocument(in, c.NodeFactory(trace))
	if err != nil {
		return err
	}

	logger.Debug("document built", "builder", c.Builder)

	switch c.Emit {
	case config.EmitLLVM:
		mod, err := ember.Lower(c.Function, stmt)
		if err != nil {
			return errors.Wrap(err, "lower")
		}

		_, err = fmt.Fprint(out, mod)
		return err
	default:
		_, err = fmt.Fprintln(out, ember.Unparse(stmt, 0))
		return err
	}
}
