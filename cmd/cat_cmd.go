package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Cat command flags
var (
	catOffset uint64
	catLength int64
)

func createCatCommand() *cobra.Command {
	catCmd := &cobra.Command{
		Use:   "cat [flags] FILE PATH",
		Short: "prints the content of a stream",
		Long: `Cat writes the raw bytes of the stream at PATH, for example
"Storage/Stream", to the standard output.`,
		Args: cobra.ExactArgs(2),
		RunE: executeCat,
	}

	catCmd.Flags().Uint64Var(&catOffset, "offset", 0, "Start at this byte of the stream")
	catCmd.Flags().Int64Var(&catLength, "length", -1, "Number of bytes to print, negative means up to the end")

	return catCmd
}

func executeCat(cmd *cobra.Command, args []string) error {
	reader, err := openContainer(args[0])
	if err != nil {
		return err
	}

	entry, err := reader.Find(args[1])
	if err != nil {
		return err
	}
	if !entry.IsStream() {
		return fmt.Errorf("%s is a %v and no stream", args[1], entry.Type)
	}

	length := uint64(catLength)
	if catLength < 0 {
		length = 0
		if catOffset < entry.Size {
			length = entry.Size - catOffset
		}
	}

	log.Debug("reading stream", zap.String("path", args[1]), zap.Uint64("offset", catOffset), zap.Uint64("length", length))
	data, err := reader.Read(entry, catOffset, length)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
