package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"pubdiff/internal/api"
	"pubdiff/internal/snapshot"
)

var printCmd = &cobra.Command{
	Use:   "print [flags] snapshot.json",
	Short: "Print the items of a public API snapshot",
	Long:  `Print renders every item of a snapshot, one line per item, sorted as the diff engine would sort them`,
	Args:  cobra.ExactArgs(1),
	RunE:  runPrint,
}

func init() {
	printCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runPrint(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	items, err := snapshot.NewLoader(nil).Load(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	sort.SliceStable(items, func(i, j int) bool { return api.Less(items[i], items[j]) })

	out := cmd.OutOrStdout()
	switch format {
	case "pretty":
		for _, it := range items {
			if _, err := fmt.Fprintln(out, it.Render()); err != nil {
				return err
			}
		}
		return nil
	case "json":
		return snapshot.Encode(out, items)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
