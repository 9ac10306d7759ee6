// Command assetgatectl is the operator CLI: it issues admin bearer tokens,
// manages claim issuer keys and tails the relayed audit stream.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "assetgatectl",
		Short:         "Operator tooling for an assetgate deployment",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(
		CmdToken(),
		CmdKeygen(),
		CmdSignClaim(),
		CmdEvents(),
	)
	return cmd
}
