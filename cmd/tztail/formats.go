package main

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/tztail/tztail-go/pkg/tztail/formatfile"
	"github.com/tztail/tztail-go/pkg/tztail/timefmt"
)

// exampleTime is the instant rendered in the formats listing.
var exampleTime = time.Date(2014, 11, 28, 12, 0, 9, 334000000, time.UTC)

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List the timestamp formats tried on each line",
	Long: `List the timestamp formats tztail detects, in priority order. The first
format that matches a line is used.

A format or formats file named in the config file or with --formats-file
is listed instead. Formats without a timezone are read as UTC.`,
	Args: cobra.NoArgs,
	RunE: runFormats,
}

func init() {
	rootCmd.AddCommand(formatsCmd)
}

func runFormats(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd.Flags().Changed)
	if err != nil {
		return err
	}
	reg, err := formatsRegistry(s)
	if err != nil {
		return err
	}
	return writeFormats(cmd.OutOrStdout(), reg)
}

// formatsRegistry returns the registry the root command would search, so the
// listing follows the same config file and flags.
func formatsRegistry(s settings) (*timefmt.Registry, error) {
	switch {
	case s.Format != "":
		f, err := timefmt.Compile(s.Format)
		if err != nil {
			return nil, fmt.Errorf("format: %w", err)
		}
		return timefmt.RegistryOf(f), nil
	case s.FormatsFile != "":
		reg, err := formatfile.NewRegistryFromFile(s.FormatsFile)
		if err != nil {
			return nil, fmt.Errorf("formats file: %w", err)
		}
		return reg, nil
	}
	return timefmt.NewDefaultRegistry(), nil
}

// writeFormats prints one row per format with an example rendered at
// exampleTime.
func writeFormats(w io.Writer, reg *timefmt.Registry) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tFORMAT\tEXAMPLE\tTIMEZONE")
	for i, f := range reg.Formats() {
		zone := "UTC"
		if f.TimezoneAware() {
			zone = "from text"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", strconv.Itoa(i+1), f, f.Render(exampleTime), zone)
	}
	return tw.Flush()
}
