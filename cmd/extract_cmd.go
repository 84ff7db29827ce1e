package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aligator/gocfb"
	"github.com/aligator/gocfb/internal/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func createExtractCommand() *cobra.Command {
	extractCmd := &cobra.Command{
		Use:   "extract [flags] FILE DIR",
		Short: "writes all streams of a compound file into a directory",
		Long: `Extract recreates the storage tree below DIR. Storages become
directories and streams become files. Characters which are not allowed in
file names are replaced by an underscore.`,
		Args: cobra.ExactArgs(2),
		RunE: executeExtract,
	}

	extractCmd.Flags().Int(config.FlagJobs, 0, "Number of streams written in parallel, 0 means one per CPU")

	return extractCmd
}

func executeExtract(cmd *cobra.Command, args []string) error {
	reader, err := openContainer(args[0])
	if err != nil {
		return err
	}

	walked, err := collectEntries(reader)
	if err != nil {
		return fmt.Errorf("walk %s: %w", args[0], err)
	}

	dest := args[1]
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(cfg.Jobs)

	count := 0
	for _, w := range walked {
		target := filepath.Join(append([]string{dest}, safeNames(w.path)...)...)

		if w.entry.IsStorage() {
			// Storages are created in traversal order before any of their streams.
			if err := os.MkdirAll(target, 0o755); err != nil {
				return err
			}
			continue
		}
		if !w.entry.IsStream() {
			continue
		}

		count++
		entry := w.entry
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return extractStream(reader, entry, target)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "extracted %d streams to %s\n", count, dest)
	return err
}

func extractStream(reader *gocfb.Reader, entry *gocfb.DirectoryEntry, target string) error {
	data, err := reader.Read(entry, 0, entry.Size)
	if err != nil {
		return fmt.Errorf("read %s: %w", target, err)
	}
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return err
	}
	log.Info("extracted stream", zap.String("file", target), zap.Uint64("size", entry.Size))
	return nil
}

// safeNames maps entry names to names usable as file names.
func safeNames(names []string) []string {
	result := make([]string, len(names))
	for i, name := range names {
		name = strings.Map(func(r rune) rune {
			if r < 0x20 || strings.ContainsRune(`/\:*?"<>|`, r) {
				return '_'
			}
			return r
		}, name)
		if name == "" || name == "." || name == ".." {
			name = "_" + name
		}
		result[i] = name
	}
	return result
}
