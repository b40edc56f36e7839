// Package cmd contains all CLI commands for pulvis.
package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/f3rmion/pulvis/internal/config"
	"github.com/f3rmion/pulvis/internal/dict"
	"github.com/f3rmion/pulvis/internal/extract"
	"github.com/f3rmion/pulvis/internal/llm"
	"github.com/f3rmion/pulvis/internal/source"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pulvis",
	Short: "Pulveris Lunaris Thesaurus Latinus - a Latin dictionary in your terminal",
	Long: `pulvis looks Latin words up in an online Latin dictionary and shows their
meaning, related entries and full conjugation or declension tables. It also
looks English terms up and lists the Latin words offered for them.

Running 'pulvis' without arguments launches the interactive session.`,
	SilenceUsage: true,
	RunE:         runInteractive,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config directory (default is $HOME/.config/pulvis)")
	rootCmd.PersistentFlags().Bool("verbose", false, "verbose output")
	rootCmd.PersistentFlags().Bool("log-json", false, "log as JSON lines instead of console text")
	rootCmd.PersistentFlags().String("base-url", "", "override the dictionary site base URL")

	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("log_json", rootCmd.PersistentFlags().Lookup("log-json"))
	viper.BindPFlag("source.base_url", rootCmd.PersistentFlags().Lookup("base-url"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.Set("config_dir", cfgFile)
	} else {
		configDir, err := config.GetConfigDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error finding home directory:", err)
			os.Exit(1)
		}
		viper.Set("config_dir", configDir)
	}

	viper.SetEnvPrefix("PULVIS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setupLogging(os.Stderr)
}

// setupLogging configures the global zerolog logger from viper settings.
func setupLogging(w io.Writer) {
	level := zerolog.InfoLevel
	if viper.GetBool("verbose") {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	if viper.GetBool("log_json") {
		log.Logger = zerolog.New(w).With().Timestamp().Logger()
		return
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly})
}

// getConfigDir returns the configuration directory path.
func getConfigDir() string {
	return viper.GetString("config_dir")
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.FromViper(viper.GetViper())
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// newDictionary wires the HTTP source and the extractor.
func newDictionary(cfg *config.Config) *dict.Dictionary {
	src := source.NewHTTPSource(cfg.Source.Options())
	return dict.New(src, extract.New(cfg.Markers), cfg.Source.Endpoints)
}

// newExplainer returns nil when explanations are off or cannot be enabled.
func newExplainer(cfg *config.Config, force bool) *llm.Client {
	if !cfg.Explainer.Enabled && !force {
		return nil
	}
	client, err := llm.NewClient(llm.Options{
		Model:     cfg.Explainer.Model,
		MaxTokens: cfg.Explainer.MaxTokens,
		APIKeyEnv: cfg.Explainer.APIKeyEnv,
	})
	if err != nil {
		log.Warn().Err(err).Msg("explanations disabled")
		return nil
	}
	return client
}
