package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	"github.com/aligator/gocfb"
	"github.com/aligator/gocfb/internal/config"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// loadContainer reads the file at path into memory.
// Files ending with .gz or .zst are decompressed.
func loadContainer(path string) ([]byte, error) {
	var decompress func(r io.Reader) (io.ReadCloser, error)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		decompress = func(r io.Reader) (io.ReadCloser, error) {
			zr, err := gzip.NewReader(r)
			if err != nil {
				return nil, err
			}
			return zr, nil
		}
	case ".zst":
		decompress = func(r io.Reader) (io.ReadCloser, error) {
			dec, err := zstd.NewReader(r)
			if err != nil {
				return nil, err
			}
			return dec.IOReadCloser(), nil
		}
	default:
		return os.ReadFile(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r, err := decompress(f)
	if err != nil {
		return nil, fmt.Errorf("decompress %s: %w", path, err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("decompress %s: %w", path, err)
	}
	return data, nil
}

// openContainer loads and opens the compound file at path using the current configuration.
func openContainer(path string) (*gocfb.Reader, error) {
	data, err := loadContainer(path)
	if err != nil {
		return nil, err
	}
	log.Debug("loaded container", zap.String("path", path), zap.Int("size", len(data)))

	opts := []gocfb.Option{
		gocfb.WithLogger(log.Named("gocfb")),
		gocfb.WithMaxDepth(cfg.MaxDepth),
	}

	var reader *gocfb.Reader
	if cfg.SkipChecks {
		reader, err = gocfb.NewSkipChecks(data, opts...)
	} else {
		reader, err = gocfb.New(data, opts...)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s (%v): %w", path, gocfb.KindOf(err), err)
	}
	return reader, nil
}

// walkedEntry is an entry together with the names of the storages leading to it.
type walkedEntry struct {
	entry *gocfb.DirectoryEntry
	depth int

	// path is empty for the root.
	path []string
}

// collectEntries returns all entries of reader in traversal order.
func collectEntries(reader *gocfb.Reader) ([]walkedEntry, error) {
	var (
		result []walkedEntry
		names  []string
	)
	err := reader.Walk(func(entry *gocfb.DirectoryEntry, depth int) error {
		names = append(names[:depth], entry.Name)
		result = append(result, walkedEntry{
			entry: entry,
			depth: depth,
			path:  append([]string(nil), names[1:]...),
		})
		return nil
	})
	return result, err
}

// displayName quotes names containing control characters such as the
// leading 0x05 of property set streams.
func displayName(name string) string {
	if strings.IndexFunc(name, func(r rune) bool { return !unicode.IsPrint(r) }) >= 0 {
		return strconv.Quote(name)
	}
	return name
}

// writeResult writes v in the configured format. text is used for the text format.
func writeResult(cmd *cobra.Command, v interface{}, text func(w io.Writer) error) error {
	out := cmd.OutOrStdout()

	switch cfg.Format {
	case config.FormatText:
		return text(out)

	case config.FormatJSON:
		b, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal json: %w", err)
		}
		_, err = fmt.Fprintln(out, string(b))
		return err

	case config.FormatYAML:
		b, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("marshal yaml: %w", err)
		}
		_, err = out.Write(b)
		return err

	default:
		return fmt.Errorf("unsupported output format: %s", cfg.Format)
	}
}
