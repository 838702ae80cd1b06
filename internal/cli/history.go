package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"ruleofthree/internal/app"
)

func newHistoryCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List the last calculations, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(cmd.Context(), opts.cfg)
			if err != nil {
				return err
			}
			defer sess.Close()

			writeHistory(cmd.OutOrStdout(), sess.state.HistoryView())
			return nil
		},
	}

	cmd.AddCommand(newHistoryClearCommand(opts))
	return cmd
}

func newHistoryClearCommand(opts *RootOptions) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete the whole history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(cmd.Context(), opts.cfg)
			if err != nil {
				return err
			}
			defer sess.Close()

			confirmed := yes
			if !confirmed {
				fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N] ", sess.state.ConfirmPrompt())
				confirmed = readConfirmation(cmd.InOrStdin())
			}
			if !confirmed {
				return nil
			}

			return sess.state.ClearHistory(cmd.Context(), true)
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func readConfirmation(r io.Reader) bool {
	line, _ := bufio.NewReader(r).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes", "s", "sim":
		return true
	}
	return false
}

func writeHistory(w io.Writer, view app.HistoryView) {
	if len(view.Items) == 0 {
		fmt.Fprintln(w, view.Empty)
		return
	}
	for _, item := range view.Items {
		fmt.Fprintf(w, "%-8s %s  %s\n", item.Label, item.Summary, item.Calculation.Timestamp)
	}
}
