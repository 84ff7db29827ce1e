package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/aligator/gocfb"
	"github.com/aligator/gocfb/internal/config"
	"github.com/spf13/cobra"
)

var summaryInformationNames = map[uint32]string{
	gocfb.PIDCodepage:   "Codepage",
	gocfb.PIDTitle:      "Title",
	gocfb.PIDSubject:    "Subject",
	gocfb.PIDAuthor:     "Author",
	gocfb.PIDKeywords:   "Keywords",
	gocfb.PIDComments:   "Comments",
	gocfb.PIDTemplate:   "Template",
	gocfb.PIDLastAuthor: "LastAuthor",
	gocfb.PIDRevNumber:  "RevNumber",
	gocfb.PIDAppName:    "AppName",
}

type property struct {
	ID        uint32 `json:"id" yaml:"id"`
	Name      string `json:"name,omitempty" yaml:"name,omitempty"`
	Value     string `json:"value,omitempty" yaml:"value,omitempty"`
	Supported bool   `json:"supported" yaml:"supported"`
}

type propertySet struct {
	FormatID   string     `json:"formatId" yaml:"formatId"`
	Properties []property `json:"properties" yaml:"properties"`
}

func createPropsCommand() *cobra.Command {
	propsCmd := &cobra.Command{
		Use:   "props [flags] FILE [PATH]",
		Short: "prints the string properties of a property set stream",
		Long: `Props decodes the property set stream at PATH. Without PATH the
summary information stream of the root storage is used.
Only string properties are decoded, other values are listed as unsupported.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: executeProps,
	}

	propsCmd.Flags().String(config.FlagFormat, config.FormatText, "Output format (text, json, yaml)")

	return propsCmd
}

func executeProps(cmd *cobra.Command, args []string) error {
	reader, err := openContainer(args[0])
	if err != nil {
		return err
	}

	path := gocfb.SummaryInformationStream
	if len(args) > 1 {
		path = args[1]
	}
	entry, err := reader.Find(path)
	if err != nil {
		return err
	}

	stream, err := reader.PropertySetStream(entry)
	if err != nil {
		return fmt.Errorf("property set %s: %w", displayName(path), err)
	}

	sets := make([]propertySet, 0, len(stream.Sets))
	for _, set := range stream.Sets {
		decoded, err := decodePropertySet(set)
		if err != nil {
			return fmt.Errorf("property set %s: %w", displayName(path), err)
		}
		sets = append(sets, decoded)
	}

	return writeResult(cmd, sets, func(out io.Writer) error {
		for _, set := range sets {
			if _, err := fmt.Fprintln(out, set.FormatID); err != nil {
				return err
			}
			for _, p := range set.Properties {
				name := p.Name
				if name == "" {
					name = "Property"
				}
				value := p.Value
				if !p.Supported {
					value = "(unsupported type)"
				}
				if _, err := fmt.Fprintf(out, "  %s (%d): %s\n", name, p.ID, value); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func decodePropertySet(set *gocfb.PropertySet) (propertySet, error) {
	result := propertySet{FormatID: set.FormatID.String()}

	for _, id := range set.IDs() {
		p := property{ID: id}
		if set.FormatID == gocfb.FMTIDSummaryInformation {
			p.Name = summaryInformationNames[id]
		}

		value, _, err := set.StringProperty(id)
		switch {
		case errors.Is(err, gocfb.ErrInvalidArgument):
		case err != nil:
			return result, err
		default:
			p.Value = value
			p.Supported = true
		}
		result.Properties = append(result.Properties, p)
	}
	return result, nil
}
