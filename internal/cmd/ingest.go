package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/FACorreiaa/go-tourism-chatbot/internal/bridge"
	"github.com/FACorreiaa/go-tourism-chatbot/internal/dataset"
	"github.com/FACorreiaa/go-tourism-chatbot/internal/types"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Embed the tourism dataset into the vector store",
	Long: `Convert every dataset record into a document, embed it and upsert it into
the vector store. Re-running is safe: documents are keyed by source record
and chunk index. Use --from to ingest a previously exported JSON file.`,
	Args: cobra.NoArgs,
	RunE: runIngest,
}

var (
	ingestFrom    string
	ingestReset   bool
	ingestTimeout time.Duration
)

func init() {
	ingestCmd.Flags().StringVar(&ingestFrom, "from", "", "dataset JSON file (default: bundled dataset)")
	ingestCmd.Flags().BoolVar(&ingestReset, "reset", false, "delete all stored documents first")
	ingestCmd.Flags().DurationVar(&ingestTimeout, "timeout", 10*time.Minute, "overall ingestion timeout")
	rootCmd.AddCommand(ingestCmd)
}

func loadDataset() (*dataset.Dataset, error) {
	if ingestFrom == "" {
		return dataset.Generate(), nil
	}
	return dataset.Load(ingestFrom)
}

func runIngest(cmd *cobra.Command, args []string) error {
	d, err := loadDataset()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	a, err := bootstrap(ctx, false)
	if err != nil {
		return err
	}
	defer a.Close()

	b, err := bridge.Default()
	if err != nil {
		return err
	}
	store := a.container.VectorStore

	if ingestReset {
		n, err := bridge.Run(ctx, b, store.Reset, a.cfg.Bridge.DefaultTimeout)
		if err != nil {
			return fmt.Errorf("failed to reset vector store: %w", err)
		}
		a.logger.InfoContext(ctx, "Vector store reset", slog.Int64("deleted", n))
	}

	docs := d.Documents()
	report, err := bridge.Run(ctx, b, func(ctx context.Context) (types.IngestReport, error) {
		return store.Ingest(ctx, docs)
	}, ingestTimeout)
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}

	total, err := bridge.Run(ctx, b, store.Count, a.cfg.Bridge.DefaultTimeout)
	if err != nil {
		return fmt.Errorf("failed to count documents: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "ingested %d documents (%d chunks) in %s; store holds %d chunks\n",
		report.Documents, report.Chunks, report.Duration.Round(time.Millisecond), total)
	return nil
}
