package main

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Config struct for application configuration
type Config struct {
	Fallback     string        `mapstructure:"fallback"`
	ChunkSize    int           `mapstructure:"chunk-size"`
	MaxBuffered  int           `mapstructure:"max-buffered"`
	TickInterval time.Duration `mapstructure:"tick-interval"`
	LogLevel     string        `mapstructure:"log-level"`
	Plain        bool          `mapstructure:"plain"`
}

var (
	cfg     Config
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "stdin-monitor",
		Short: "Live terminal view of whatever arrives on stdin",
		Long: `stdin-monitor shows piped input as it arrives, chunk by chunk, without
ever blocking the UI on a read. A tick counter keeps advancing whether or
not data is flowing, so stalls in the producer are visible at a glance.

When stdin is an interactive terminal no read is attempted at all; the
monitor shows the configured fallback value instead of hanging.`,
		Example: `  # Watch a log stream
  kubectl logs -f deployment/my-app | stdin-monitor

  # Slow producers: the tick counter proves the UI never blocks
  (while true; do date; sleep 2; done) | stdin-monitor

  # Bound the buffer so a paused UI drops old chunks instead of growing
  yes | stdin-monitor --max-buffered 500

  # No pipe attached: shows the fallback banner
  stdin-monitor --fallback "nothing piped"`,
		RunE: runMonitor,
	}
)

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/stdin-monitor/config.yml)")
	rootCmd.Flags().String("fallback", "no piped input", "Value shown when stdin is interactive and nothing will arrive")
	rootCmd.Flags().Int("chunk-size", 0, "Read buffer size in bytes (0 uses the library default)")
	rootCmd.Flags().Int("max-buffered", 0, "Maximum chunks buffered for a slow UI, dropping oldest on overflow (0 means unbounded)")
	rootCmd.Flags().DurationP("tick-interval", "t", time.Second, "How often the liveness tick advances")
	rootCmd.Flags().String("log-level", "warn", "Log level for stderr diagnostics (debug, info, warn, error)")
	rootCmd.Flags().Bool("plain", false, "Run without a TTY (plain output, for testing)")

	viper.BindPFlag("fallback", rootCmd.Flags().Lookup("fallback"))
	viper.BindPFlag("chunk-size", rootCmd.Flags().Lookup("chunk-size"))
	viper.BindPFlag("max-buffered", rootCmd.Flags().Lookup("max-buffered"))
	viper.BindPFlag("tick-interval", rootCmd.Flags().Lookup("tick-interval"))
	viper.BindPFlag("log-level", rootCmd.Flags().Lookup("log-level"))
	viper.BindPFlag("plain", rootCmd.Flags().Lookup("plain"))
}

func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			log.Printf("Error finding home directory: %v", err)
		} else {
			viper.AddConfigPath(home + "/.config/stdin-monitor")
			viper.SetConfigType("yaml")
			viper.SetConfigName("config")
		}
	}

	// Support environment variables
	viper.SetEnvPrefix("STDIN_MONITOR")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	// Read config file if it exists
	if err := viper.ReadInConfig(); err == nil {
		log.Printf("Using config file: %s", viper.ConfigFileUsed())
	}

	if err := viper.Unmarshal(&cfg); err != nil {
		log.Fatalf("Unable to decode config: %v", err)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
