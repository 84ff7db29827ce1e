// cfbdump inspects compound files (.doc, .xls, .msg, ...) and extracts their streams.
package main

import (
	"fmt"
	"os"

	"github.com/aligator/gocfb/internal/config"
	"github.com/aligator/gocfb/internal/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Global flags
var (
	configPath string
)

// Set up by the root command before any subcommand runs.
var (
	cfg      = config.Default()
	log      = zap.NewNop()
	closeLog = func() {}
)

func createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "cfbdump",
		Short: "cfbdump inspects compound files",
		Long: `cfbdump reads Microsoft compound files (OLE2 structured storage) as used
by legacy Office documents, Outlook messages and many other formats.
It lists the storage tree, prints streams and property sets and extracts
all streams into a directory.`,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "Path to a YAML configuration file")
	flags.String(config.FlagLogLevel, "warn", "Log level (debug, info, warn, error)")
	flags.String(config.FlagLogFile, "", "Additionally write the log to this rotated file")
	flags.Bool(config.FlagSkipChecks, false, "Skip the header validations which are not needed to read the file")

	rootCmd.AddCommand(createTreeCommand())
	rootCmd.AddCommand(createCatCommand())
	rootCmd.AddCommand(createPropsCommand())
	rootCmd.AddCommand(createExtractCommand())

	return rootCmd
}

// setup merges the configuration file with the flags and creates the logger.
func setup(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := loaded.Override(cmd.Flags()); err != nil {
		return err
	}

	newLog, closeFn, err := logger.New(logger.Config{
		Level:      loaded.Log.Level,
		File:       loaded.Log.File,
		MaxSizeMB:  loaded.Log.MaxSizeMB,
		MaxAgeDays: loaded.Log.MaxAgeDays,
		MaxBackups: loaded.Log.MaxBackups,
		Compress:   loaded.Log.Compress,
	}, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	closeLog()
	cfg, log, closeLog = loaded, newLog, closeFn
	return nil
}

func main() {
	err := createRootCommand().Execute()
	closeLog()
	if err != nil {
		os.Exit(1)
	}
}
