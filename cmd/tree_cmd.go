package main

import (
	_ "crypto/sha256"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aligator/gocfb"
	"github.com/aligator/gocfb/internal/config"
	"github.com/opencontainers/go-digest"
	"github.com/spf13/cobra"
)

// Tree command flags
var (
	withDigest bool
)

type treeEntry struct {
	ID       uint32 `json:"id" yaml:"id"`
	Path     string `json:"path" yaml:"path"`
	Type     string `json:"type" yaml:"type"`
	Depth    int    `json:"depth" yaml:"depth"`
	Size     uint64 `json:"size" yaml:"size"`
	CLSID    string `json:"clsid,omitempty" yaml:"clsid,omitempty"`
	Modified string `json:"modified,omitempty" yaml:"modified,omitempty"`
	Digest   string `json:"digest,omitempty" yaml:"digest,omitempty"`

	name string
}

func createTreeCommand() *cobra.Command {
	treeCmd := &cobra.Command{
		Use:   "tree [flags] FILE",
		Short: "lists the storages and streams of a compound file",
		Long: `Tree prints every storage and stream in traversal order together with
its size. Storages are marked with a trailing slash.`,
		Args: cobra.ExactArgs(1),
		RunE: executeTree,
	}

	treeCmd.Flags().String(config.FlagFormat, config.FormatText, "Output format (text, json, yaml)")
	treeCmd.Flags().Int(config.FlagMaxDepth, -1, "Do not descend deeper than this level, negative means no limit")
	treeCmd.Flags().BoolVar(&withDigest, "digest", false, "Print the sha256 digest of every stream")

	return treeCmd
}

func executeTree(cmd *cobra.Command, args []string) error {
	reader, err := openContainer(args[0])
	if err != nil {
		return err
	}

	walked, err := collectEntries(reader)
	if err != nil {
		return fmt.Errorf("walk %s: %w", args[0], err)
	}

	entries := make([]treeEntry, 0, len(walked))
	for _, w := range walked {
		entry, err := newTreeEntry(reader, w)
		if err != nil {
			return err
		}
		entries = append(entries, entry)
	}

	return writeResult(cmd, entries, func(out io.Writer) error {
		for _, entry := range entries {
			line := strings.Repeat("  ", entry.Depth) + displayName(entry.name)
			if entry.Type == gocfb.TypeStream.String() {
				line += fmt.Sprintf(" (%d bytes)", entry.Size)
			} else {
				line += "/"
			}
			if entry.Digest != "" {
				line += " " + entry.Digest
			}
			if _, err := fmt.Fprintln(out, line); err != nil {
				return err
			}
		}
		return nil
	})
}

func newTreeEntry(reader *gocfb.Reader, w walkedEntry) (treeEntry, error) {
	entry := treeEntry{
		ID:    w.entry.ID,
		Path:  strings.Join(w.path, "/"),
		Type:  w.entry.Type.String(),
		Depth: w.depth,
		name:  w.entry.Name,
	}
	if w.entry.CLSID != [16]byte{} {
		entry.CLSID = w.entry.ClassID().String()
	}
	if modified := w.entry.Modified(); !modified.IsZero() {
		entry.Modified = modified.UTC().Format(time.RFC3339)
	}

	if !w.entry.IsStream() {
		return entry, nil
	}
	entry.Size = w.entry.Size

	if withDigest {
		stream, err := reader.Open(w.entry)
		if err != nil {
			return entry, err
		}
		d, err := digest.FromReader(stream)
		if err != nil {
			return entry, fmt.Errorf("digest of %q: %w", entry.Path, err)
		}
		entry.Digest = d.String()
	}
	return entry, nil
}
