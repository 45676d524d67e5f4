package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Aya-Alhamwe/Personal-Data-Assistant/internal/adapters/driving/inbox"
	"github.com/Aya-Alhamwe/Personal-Data-Assistant/internal/core/domain"
)

var (
	indexWatch   string
	indexWorkers int
)

var indexCmd = &cobra.Command{
	Use:   "index [FILE...]",
	Short: "Build indices ahead of time",
	Long: `Build the vector index of each PDF so later uploads are served from cache.

With --watch, PDFs already in DIR are indexed and new ones are picked up as
they appear, until interrupted.`,
	Args: func(_ *cobra.Command, args []string) error {
		if len(args) == 0 && indexWatch == "" {
			return errors.New("requires at least one FILE or --watch DIR")
		}
		return nil
	},
	RunE: runIndex,
}

func init() {
	indexCmd.Flags().StringVar(&indexWatch, "watch", "", "directory to watch for new PDFs")
	indexCmd.Flags().IntVarP(&indexWorkers, "workers", "w", inbox.DefaultWorkers, "concurrent builds")
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	rt, err := loadRuntime(cmd, RuntimeOptions{})
	if err != nil {
		return err
	}
	defer rt.Close()

	workers := indexWorkers
	if workers < 1 {
		workers = 1
	}

	results := make([]*domain.IngestResult, len(args))
	errs := make([]error, len(args))

	var g errgroup.Group
	g.SetLimit(workers)
	for i, path := range args {
		g.Go(func() error {
			results[i], errs[i] = rt.Indexer.Index(cmd.Context(), path)
			return nil
		})
	}
	_ = g.Wait()

	for i, path := range args {
		if errs[i] != nil {
			cmd.Printf("%s: FAILED: %v\n", path, errs[i])
			continue
		}
		r := results[i]
		cmd.Printf("%s: %s (%s, %d chunks)\n", path, r.Status, r.DocumentID.Short(), r.Chunks)
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("indexing failed: %w", err)
	}

	if indexWatch != "" {
		cmd.Printf("Watching %s for new PDFs (Ctrl+C to stop)\n", indexWatch)
		return inbox.New(indexWatch, rt.Indexer, inbox.WithWorkers(workers)).Run(cmd.Context())
	}
	return nil
}
