package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <input.pdf>",
	Short: "Print the page count and page sizes of a PDF",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
		info, err := newService(cmd.ErrOrStderr()).Inspect(cmd.Context(), data)
		if err != nil {
			return err
		}

		asJSON, _ := cmd.Flags().GetBool("json")
		if asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(info)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Pages in PDF: %d\n", info.PageCount)
		for i, p := range info.Pages {
			fmt.Fprintf(cmd.OutOrStdout(), "  page %d: %.0f x %.0f pt\n", i+1, p.Width, p.Height)
		}
		return nil
	},
}

func init() {
	inspectCmd.Flags().Bool("json", false, "print the result as JSON")
	rootCmd.AddCommand(inspectCmd)
}
