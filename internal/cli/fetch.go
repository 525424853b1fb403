package cli

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var fetchJSON bool

var fetchCmd = &cobra.Command{
	Use:   "fetch <chunk-id>",
	Short: "Fetch a chunk's full text by id",
	Args:  cobra.ExactArgs(1),
	RunE:  runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)
	fetchCmd.Flags().BoolVar(&fetchJSON, "json", false, "output as JSON")
}

func runFetch(cmd *cobra.Command, args []string) error {
	service, err := newService(cfg)
	if err != nil {
		return err
	}

	resp, err := service.Fetch(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("fetch failed: %w", err)
	}

	if fetchJSON {
		output, _ := json.MarshalIndent(resp, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	color.New(color.FgCyan, color.Bold).Println(resp.Title)
	if resp.URL != "" {
		color.New(color.Faint).Println(resp.URL)
	}
	fmt.Println()
	fmt.Println(resp.Text)
	return nil
}
