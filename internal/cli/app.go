// Package cli implements the vectrace command, which drives Vector
// workloads and logs how the vector grows and recovers from failures.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

// Run executes vectrace with args. It cancels the running command when
// an interrupt is received.
func Run(args ...string) error {
	cmd := buildCmd()
	cmd.SetArgs(args)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	return cmd.ExecuteContext(ctx)
}

// app holds what the root command prepares for its subcommands.
type app struct {
	cfg Config
	log *slog.Logger
}

func buildCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "vectrace",
		Short:         "Trace growth and failure recovery of a dynamic array",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) (err error) {
			a.cfg, err = loadConfig(cmd.Flags())
			if err != nil {
				return err
			}
			a.log, err = newLogger(cmd.ErrOrStderr(), a.cfg.Log)
			return err
		},
	}
	registerFlags(root.PersistentFlags())

	root.AddCommand(
		&cobra.Command{
			Use:   "grow",
			Short: "Append count ints and log every reallocation",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) (err error) {
				defer errRecover(&err)
				m, err := grow(cmd.Context(), a.log, a.cfg)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "size=%d capacity=%d allocations=%d utilization=%.2f\n",
					m.Size, m.Capacity, m.Allocations, m.Utilization)
				return err
			},
		},
		&cobra.Command{
			Use:   "scenario",
			Short: "Run push_back, insert, erase and pop_back on [1 2 3]",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) (err error) {
				defer errRecover(&err)
				_, err = scenario(cmd.Context(), a.log, cmd.OutOrStdout())
				return err
			},
		},
		&cobra.Command{
			Use:   "fail",
			Short: "Fail one construction of an append and report the vector state",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				r, err := fail(cmd.Context(), a.log, a.cfg)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "policy=%s before=%v after=%v capacity=%d->%d unchanged=%t err=%v\n",
					r.Policy, r.Before, r.After, r.Capacity[0], r.Capacity[1], r.Unchanged, r.Err)
				return err
			},
		},
	)
	return root
}
