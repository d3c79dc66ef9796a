package main

import (
	"bytes"

	"github.com/spf13/cobra"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the completion state as JSON",
	Long:  `Write the completion flags as a JSON object mapping issue ID to done.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		d, err := openDashboard(cmd)
		if err != nil {
			return err
		}
		if exportOutput == "" {
			return d.ExportCompletion(cmd.OutOrStdout())
		}
		var buf bytes.Buffer
		if err := d.ExportCompletion(&buf); err != nil {
			return err
		}
		return writeOutput(exportOutput, buf.Bytes())
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "write to this file instead of stdout")
}
