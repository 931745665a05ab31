package main

import (
	"github.com/spf13/cobra"

	"omibyte.io/svdgen/builder"
)

func newEnvCmd(env builder.Env) *cobra.Command {
	return &cobra.Command{
		Use:   "env",
		Short: "Print svd-gen environment information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return env.Print(cmd.OutOrStdout())
		},
	}
}
