package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fredcamaral/lessondeck/internal/adapters/secondary/config"
)

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a default " + config.LocalConfigName,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	path := config.LocalConfigName
	if len(args) == 1 {
		path = args[0]
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if err := config.NewTOMLLoader().CreateDefaults(ctx, path); err != nil {
		if errors.Is(err, config.ErrConfigExists) {
			return fmt.Errorf("%s already exists", path)
		}
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
	return nil
}
