package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/repogate/repogate/internal/errx"
	"github.com/repogate/repogate/pkg/api"
	"github.com/repogate/repogate/pkg/hooks"
	"github.com/repogate/repogate/pkg/logging"
	"github.com/repogate/repogate/pkg/state"
)

var rootCmd = &cobra.Command{
	Use:   "repogate",
	Short: "Commit policy gate for centralized version control",
	Long: `repogate runs configurable pre-commit checks and post-commit hooks
against a changeset. Repository servers invoke it from their hook scripts;
a non-zero exit from pre-commit rejects the commit.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogging()
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Gate config file (default repogate.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("audit-log", "", "Append JSONL audit events to this file")
	rootCmd.PersistentFlags().String("state-db", "", "Run history database path")
	rootCmd.PersistentFlags().String("workdir", "", "Checked-out tree used to read committed file contents")
	viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("audit-log", rootCmd.PersistentFlags().Lookup("audit-log"))
	viper.BindPFlag("state-db", rootCmd.PersistentFlags().Lookup("state-db"))
	viper.BindPFlag("workdir", rootCmd.PersistentFlags().Lookup("workdir"))

	viper.SetEnvPrefix("REPOGATE")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func setupLogging() error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(viper.GetString("log-level"))); err != nil {
		return errx.Wrap(ErrBadLogLevel, err)
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
	return nil
}

// loadGateConfig reads the gate config file. The explicit --config flag wins;
// otherwise repogate.yaml is looked up in the working directory and /etc/repogate.
func loadGateConfig() (*api.Config, error) {
	v := viper.New()
	if path := viper.GetString("config"); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("repogate")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/repogate")
	}
	if err := v.ReadInConfig(); err != nil {
		return nil, errx.Wrap(ErrReadConfig, err)
	}

	var cfg api.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errx.Wrap(ErrParseConfig, err)
	}
	return &cfg, nil
}

// newEngine builds the policy engine from the loaded config plus the
// auxiliary pieces wired from flags.
func newEngine(cfg *api.Config) (*hooks.Engine, *logging.Emitter, error) {
	var emitter *logging.Emitter
	if path := viper.GetString("audit-log"); path != "" {
		sink, err := logging.NewJSONLWriter(path)
		if err != nil {
			return nil, nil, err
		}
		emitter = logging.NewEmitter(logging.EmitterConfig{Repo: cfg.Repo},
			sink, logging.NewSlogSink(slog.Default()))
	}

	var provider hooks.ContentProvider
	if root := viper.GetString("workdir"); root != "" {
		provider = hooks.DirProvider{Root: root}
	}

	engine, err := hooks.NewEngine(cfg, provider, slog.Default(), emitter)
	if err != nil {
		if emitter != nil {
			emitter.Close()
		}
		return nil, nil, err
	}
	if emitter != nil {
		summary := fmt.Sprintf("%d pre-commit check(s), %d post-commit hook(s)",
			len(engine.PreCommitChecks()), len(engine.PostCommitHooks()))
		_ = emitter.Emit("", logging.EventConfigLoaded, summary, "", nil)
	}
	return engine, emitter, nil
}

// openRunStore opens the run history database when --state-db is set.
// Returns nil without error when history is not configured.
func openRunStore() (*state.Manager, error) {
	path := viper.GetString("state-db")
	if path == "" {
		return nil, nil
	}
	return state.Open(path)
}
