package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"ruleofthree/internal/proportion"
)

func newCalcCommand(opts *RootOptions) *cobra.Command {
	var mode string

	cmd := &cobra.Command{
		Use:   "calc A B C",
		Short: "Find X from A, B and C and record it in the history",
		Long: "Find X from A, B and C and record it in the history.\n\n" +
			"Direct:  A/B = C/X, so X = (C × B) ÷ A\n" +
			"Inverse: A×B = C×X, so X = (A × B) ÷ C\n\n" +
			"Use -- before negative operands.",
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := proportion.ParseMode(mode)
			if err != nil {
				return err
			}

			sess, err := openSession(cmd.Context(), opts.cfg)
			if err != nil {
				return err
			}
			defer sess.Close()

			sess.state.SetMode(m)

			res, err := sess.state.Calculate(cmd.Context(), args[0], args[1], args[2])
			if err != nil {
				if errors.Is(err, proportion.ErrValidation) {
					rej := sess.state.Reject()
					fmt.Fprintln(cmd.ErrOrStderr(), rej.Message)
					fmt.Fprintln(cmd.ErrOrStderr(), rej.Hint)
				}
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "X = %s\n\n", res.Display)
			fmt.Fprint(out, res.Explanation.String())
			return nil
		},
	}

	cmd.Flags().StringVarP(&mode, "mode", "m", proportion.Direct.String(), "proportion (direct|inverse)")
	return cmd
}

func newExampleCommand(opts *RootOptions) *cobra.Command {
	var mode string

	cmd := &cobra.Command{
		Use:   "example",
		Short: "Show a worked example for a mode",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := proportion.ParseMode(mode)
			if err != nil {
				return err
			}

			sess, err := openSession(cmd.Context(), opts.cfg)
			if err != nil {
				return err
			}
			defer sess.Close()

			sess.state.SetMode(m)
			ex := sess.state.LoadExample()

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ex.Title)
			fmt.Fprintln(out, ex.Question)
			fmt.Fprintf(out, "A=%s B=%s C=%s\n",
				proportion.FormatNumber(ex.A), proportion.FormatNumber(ex.B), proportion.FormatNumber(ex.C))
			return nil
		},
	}

	cmd.Flags().StringVarP(&mode, "mode", "m", proportion.Direct.String(), "proportion (direct|inverse)")
	return cmd
}
