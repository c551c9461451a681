package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	ember "go.ember.dev/pkg"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens [file]",
	Short: "Print the tokens of each source line",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in, closeFn, err := openInput(args)
		if err != nil {
			return err
		}
		defer closeFn()

		return printTokens(in, cmd.OutOrStdout())
	},
}

// printTokens tokenizes line by line; newlines are not part of the token
// language.
func printTokens(in io.Reader, out io.Writer) error {
	scan := bufio.NewScanner(in)
	for line := 1; scan.Scan(); line++ {
		text := strings.TrimRight(scan.Text(), "\r")

		toks, err := ember.Tokenize(text)
		if err != nil {
			return errors.Wrapf(err, "line %d", line)
		}

		logger.Debug("tokenized line", "line", line, "tokens", len(toks))
		for _, tok := range toks {
			fmt.Fprintln(out, tok)
		}
	}

	return errors.Wrap(scan.Err(), "read input")
}

func openInput(args []string) (io.Reader, func(), error) {
	if len(args) == 0 || args[0] == "-" {
		return os.Stdin, func() {}, nil
	}

	f, err := os.Open(args[0])
	if err != nil {
		return nil, nil, errors.Wrap(err, "open input")
	}

	return f, func() { _ = f.Close() }, nil
}
