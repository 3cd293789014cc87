// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/coverage-audit/internal/publisher"
)

var classifyCmd = &cobra.Command{
	Use:   "classify [publisher names...]",
	Short: "Show the publisher group for raw publisher names",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return fmt.Errorf("provide one or more publisher names")
		}

		tablePath, _ := cmd.Flags().GetString("publisher-table")
		table := publisher.DefaultTable()
		if tablePath != "" {
			var err error
			if table, err = publisher.LoadTable(tablePath); err != nil {
				return err
			}
		}

		for _, name := range args {
			fmt.Fprintf(cmd.OutOrStdout(), "%-40s %s\n", name, table.Classify(name))
		}
		return nil
	},
}

func init() {
	classifyCmd.Flags().String("publisher-table", "", "YAML file replacing the built-in publisher table")

	rootCmd.AddCommand(classifyCmd)
}
