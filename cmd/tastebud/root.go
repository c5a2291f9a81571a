package tastebud

import (
	"fmt"
	"os"
	"strings"

	"github.com/edgeflare/tastebud/pkg/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	cfgFile  string
	logLevel string
	cfg      *config.Config
	logger   *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "tastebud",
	Short: "tastebud serves a restaurant and dish catalog over HTTP",
	Long:  `tastebud exposes a read-only restaurant and dish catalog, stored in SQLite or PostgreSQL, as a JSON API`,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		versionFlag, _ := cmd.Flags().GetBool("version")
		if versionFlag {
			fmt.Println(config.Version)
			return
		}

		// If no subcommand is provided, print help
		cmd.Help()
	},
	SilenceUsage: true,
}

func Main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if cmd == rootCmd {
			return nil
		}
		return initConfig()
	}
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/tastebud.yaml)")
	rootCmd.PersistentFlags().StringVarP(&logLevel, "log-level", "L", "info", "log at this level (debug, info, warn, error, none); none also disables the request log")
	rootCmd.Flags().BoolP("version", "v", false, "Print the version number")
}

func initConfig() error {
	var err error
	if logger, err = newLogger(logLevel); err != nil {
		return err
	}

	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	if cfg.File != "" {
		logger.Info("using config file", zap.String("path", cfg.File))
	}
	return nil
}

// accessLogEnabled is false when the request log was switched off with --log-level none.
func accessLogEnabled() bool {
	return !strings.EqualFold(logLevel, "none")
}

// newLogger builds a production JSON logger at level. "none" keeps info-level
// lifecycle logs; only the per-request log is dropped.
func newLogger(level string) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	if name := strings.ToLower(level); name != "none" {
		lvl, err := zapcore.ParseLevel(name)
		if err != nil {
			return nil, fmt.Errorf("invalid --log-level %q: %w", level, err)
		}
		zcfg.Level = zap.NewAtomicLevelAt(lvl)
	}
	return zcfg.Build()
}
