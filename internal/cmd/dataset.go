package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/FACorreiaa/go-tourism-chatbot/internal/dataset"
)

var datasetCmd = &cobra.Command{
	Use:   "dataset",
	Short: "Inspect or export the bundled Sri Lanka tourism dataset",
}

var datasetExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the dataset as JSON plus one CSV per table",
	Long: `Write the complete dataset to srilanka_tourism_complete_dataset.json and
each table to srilanka_<table>.csv in the output directory.`,
	Args: cobra.NoArgs,
	RunE: runDatasetExport,
}

var datasetStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print record counts per table",
	Args:  cobra.NoArgs,
	RunE:  runDatasetStats,
}

var exportDir string

func init() {
	datasetExportCmd.Flags().StringVarP(&exportDir, "out", "o", "data", "output directory")
	datasetCmd.AddCommand(datasetExportCmd, datasetStatsCmd)
	rootCmd.AddCommand(datasetCmd)
}

func runDatasetExport(cmd *cobra.Command, args []string) error {
	paths, err := dataset.Generate().Export(exportDir)
	if err != nil {
		return err
	}
	for _, p := range paths {
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", p)
	}
	return nil
}

func runDatasetStats(cmd *cobra.Command, args []string) error {
	counts := dataset.Generate().Counts()
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)

	total := 0
	for _, name := range names {
		fmt.Fprintf(cmd.OutOrStdout(), "%-16s %d\n", name, counts[name])
		total += counts[name]
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%-16s %d\n", "total", total)
	return nil
}
