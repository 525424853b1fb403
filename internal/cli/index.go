package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"docrag/internal/adapter/cache"
	"docrag/internal/adapter/chunker"
	"docrag/internal/adapter/fs"
	"docrag/internal/adapter/store"
	"docrag/internal/usecase"
)

var indexNoCache bool

var indexCmd = &cobra.Command{
	Use:   "index [docs-dir]",
	Short: "Build the chunk index for a documentation set",
	Long: `Chunk every markdown file under the docs directory, embed the chunks,
and write the index file. Re-running reuses cached embeddings for unchanged
chunks.

Examples:
  docrag index ./docs
  docrag index --no-cache`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIndex,
}

func init() {
	rootCmd.AddCommand(indexCmd)
	indexCmd.Flags().BoolVar(&indexNoCache, "no-cache", false, "skip the embedding cache")
}

func runIndex(cmd *cobra.Command, args []string) error {
	docsDir := cfg.Index.DocsDir
	if len(args) > 0 {
		docsDir = args[0]
	}
	docsDir = resolve(docsDir)

	ch, err := chunker.NewHeadingChunker(cfg.Index.MaxChars, cfg.Index.OverlapChars)
	if err != nil {
		return err
	}

	embedder, err := newEmbedder(cfg)
	if err != nil {
		return err
	}

	var embCache *cache.EmbeddingCache
	if !indexNoCache {
		cachePath := resolve(cfg.Index.CachePath)
		if err := os.MkdirAll(filepath.Dir(cachePath), 0755); err != nil {
			return fmt.Errorf("failed to create cache directory: %w", err)
		}
		embCache, err = cache.Open(cachePath)
		if err != nil {
			return err
		}
		defer embCache.Close()
	}

	walker := fs.NewWalker(cfg.Index.Includes, cfg.Index.Excludes)
	uc := usecase.NewIndexUseCase(walker, ch, embedder, embCache, logger)

	var bar *progressbar.ProgressBar
	onChunk := func(done, total int) {
		if bar == nil {
			bar = progressbar.Default(int64(total), "embedding chunks")
		}
		bar.Set(done)
	}

	index, result, err := uc.Build(cmd.Context(), docsDir, onChunk)
	if err != nil {
		return fmt.Errorf("index build failed: %w", err)
	}

	indexPath := resolve(cfg.Index.IndexPath)
	if err := store.Save(index, indexPath); err != nil {
		return fmt.Errorf("failed to write index: %w", err)
	}

	fmt.Printf("\nIndexed %d documents into %d chunks (%d from cache) -> %s\n",
		result.Documents, result.Chunks, result.CacheHits, indexPath)
	return nil
}
