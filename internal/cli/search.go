package cli

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	searchQuery string
	searchTopK  int
	searchJSON  bool
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search the index from the command line",
	Long: `Run a query against the loaded index and print the ranked results.

Examples:
  docrag search -q "retry policy for failed payments"
  docrag search -q "webhook signatures" --top-k 3 --json`,
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().StringVarP(&searchQuery, "query", "q", "", "search query (required)")
	searchCmd.Flags().IntVarP(&searchTopK, "top-k", "k", 0, "number of results (default 8)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output as JSON")
	searchCmd.MarkFlagRequired("query")
}

func runSearch(cmd *cobra.Command, args []string) error {
	service, err := newService(cfg)
	if err != nil {
		return err
	}

	payload := map[string]any{"query": searchQuery}
	if searchTopK > 0 {
		payload["topK"] = searchTopK
	}

	resp, err := service.Search(cmd.Context(), payload)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		output, _ := json.MarshalIndent(resp, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	if len(resp.Results) == 0 {
		fmt.Println("No results found.")
		return nil
	}
	for i, r := range resp.Results {
		color.New(color.FgCyan, color.Bold).Printf("[%d] %s\n", i+1, r.Title)
		color.New(color.Faint).Printf("    %s  %s\n", r.ID, r.URL)
	}
	return nil
}
