package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tztail/tztail-go/internal/config"
)

var (
	timezone    string
	format      string
	formatsFile string
	followFlag  bool
	lines       int
	colorMode   string
	configPath  string
	verbose     bool
)

var rootCmd = &cobra.Command{
	Use:   "tztail [FILE]",
	Short: "Convert log timestamps to another timezone",
	Long: `Read log lines from FILE (or standard input), find the timestamp in
each line and rewrite it in the target timezone. Lines without a
recognizable timestamp are printed unchanged.

The timestamp format is detected from a built-in list (see "tztail formats")
unless --format or --formats-file is given. Timestamps without an offset are
read as UTC.

Examples:
  # Convert nginx access log timestamps to local time
  tztail /var/log/nginx/access.log

  # Convert to a named zone
  kubectl logs my-pod | tztail -t Asia/Kolkata

  # Use a custom format
  tztail -f "%d/%m/%Y %H:%M:%S" app.log

  # Follow the newest *.log file in a directory, starting with the last 20 lines
  tztail -F -n 20 /var/log/myapp/`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         runRoot,
}

func init() {
	rootCmd.Flags().StringVarP(&timezone, "timezone", "t", "",
		"Target timezone, e.g. Asia/Kolkata (default: local time)")
	rootCmd.Flags().StringVarP(&format, "format", "f", "",
		`Custom timestamp format, e.g. "%Y-%m-%d %H:%M:%S"`)
	rootCmd.PersistentFlags().StringVar(&formatsFile, "formats-file", "",
		"YAML file listing timestamp formats in priority order")
	rootCmd.Flags().BoolVarP(&followFlag, "follow", "F", false,
		"Follow FILE as it grows (a directory follows its newest log file)")
	rootCmd.Flags().IntVarP(&lines, "lines", "n", -1,
		"Output only the last N lines of FILE (-1 = all)")
	rootCmd.Flags().StringVar(&colorMode, "color", "",
		"Highlight converted timestamps: auto, always, never (default auto)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Config file (default ~/.config/tztail/config.toml, or $"+config.EnvPath+")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Log debug output to stderr")

	rootCmd.MarkFlagsMutuallyExclusive("format", "formats-file")
	_ = rootCmd.RegisterFlagCompletionFunc("color", completeColor)
	_ = rootCmd.RegisterFlagCompletionFunc("formats-file", completeFormatsFile)
}

func runRoot(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	s, err := loadSettings(cmd.Flags().Changed)
	if err != nil {
		return err
	}
	if len(args) == 1 {
		s.Path = args[0]
	}

	return run(ctx, s, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
}
