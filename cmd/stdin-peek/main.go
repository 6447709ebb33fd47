package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/jlrickert/go-stdin/stdin"
	"github.com/spf13/cobra"
)

func main() {
	var fallback string
	var grace time.Duration
	var verbose bool

	rootCmd := &cobra.Command{
		Use:   "stdin-peek",
		Short: "Read piped stdin or fall back to a default value",
		Long: `stdin-peek reads whatever arrives on stdin within a short grace period
and writes it to stdout unchanged. When stdin is an interactive terminal
or no data arrives in time, it writes the fallback value instead. It
never blocks waiting for a user to type.`,
		Example: `  # Echo piped input
  echo "hello" | stdin-peek

  # No input: prints the fallback
  stdin-peek --fallback "nothing here"

  # Wait a little longer for slow producers
  slow-producer | stdin-peek --grace 500ms`,
		RunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

			input := stdin.ReadOrDefault([]byte(fallback),
				stdin.WithGracePeriod(grace),
				stdin.WithLogger(logger),
			)

			// Raw write keeps binary input intact. No trailing newline.
			if _, err := os.Stdout.Write(input); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			return nil
		},
	}

	rootCmd.Flags().StringVar(&fallback, "fallback", "", "Value to emit when stdin has no data")
	rootCmd.Flags().DurationVar(&grace, "grace", stdin.DefaultGracePeriod, "How long to wait for the first chunk of piped input")
	rootCmd.Flags().BoolVar(&verbose, "verbose", false, "Enable debug logging on stderr")

	modeCmd := &cobra.Command{
		Use:   "mode",
		Short: "Print how stdin is attached (interactive or piped)",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(stdin.DetectMode(os.Stdin))
		},
	}

	rootCmd.AddCommand(modeCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
