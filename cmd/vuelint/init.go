package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/HueCodes/vuelint/internal/config"
)

func initCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate default config file",
		Long:  "Generate a default " + config.DefaultFileName + " configuration file in the current directory.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.WriteDefault(config.DefaultFileName); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", config.DefaultFileName)
			return nil
		},
	}

	return cmd
}
