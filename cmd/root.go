package cmd

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"
	"github.com/zhubert/threadchat/internal/api"
	"github.com/zhubert/threadchat/internal/app"
	"github.com/zhubert/threadchat/internal/config"
	"github.com/zhubert/threadchat/internal/localstore"
	"github.com/zhubert/threadchat/internal/logger"
	"github.com/zhubert/threadchat/internal/session"
)

var (
	debugMode             bool
	quietMode             bool
	apiOverride           string
	version, commit, date string
)

// SetVersionInfo sets version information from ldflags
func SetVersionInfo(v, c, d string) {
	version, commit, date = v, c, d
}

var rootCmd = &cobra.Command{
	Use:   "threadchat",
	Short: "Terminal client for a threaded chat assistant",
	Long: `threadchat is a terminal client for a remote chat assistant.
Conversations are listed in a sidebar; pick one to continue it or start a new
chat. The subcommands expose the same service for scripting.`,
	RunE:          runTUI,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&quietMode, "quiet", "q", false, "Reduce logging to warnings and errors")
	rootCmd.PersistentFlags().StringVar(&apiOverride, "api", "", "Chat service base URL for this run")
}

func initConfig() {
	switch {
	case quietMode:
		logger.SetLevel(logger.LevelWarn)
	case debugMode:
		logger.SetDebug(true)
	default:
		logger.SetLevel(logger.LevelInfo)
	}
}

// Execute runs the root command
func Execute() error {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(versionTemplate())
	return rootCmd.Execute()
}

func versionTemplate() string {
	if commit != "none" && commit != "" {
		return fmt.Sprintf("threadchat %s\n  commit: %s\n  built:  %s\n", version, commit, date)
	}
	return fmt.Sprintf("threadchat %s\n", version)
}

// environment is what every command needs to talk to the service and the
// local state.
type environment struct {
	cfg    *config.Config
	client *api.Client
	store  localstore.Store
	state  *session.State
}

func (e *environment) Close() {
	if err := e.store.Close(); err != nil {
		logger.WithComponent("cmd").Warn("failed to close state store", "error", err)
	}
}

// openEnvironment loads the config, applies --api and opens the state store.
// An unusable state file falls back to memory so the client still runs.
func openEnvironment(ctx context.Context) (*environment, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}
	if apiOverride != "" {
		cfg.SetAPIBaseURL(apiOverride)
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}

	var store localstore.Store
	sqlite, err := localstore.OpenSQLite(cfg.GetStatePath())
	if err != nil {
		logger.WithComponent("cmd").Warn("state store unavailable, using memory", "path", cfg.GetStatePath(), "error", err)
		store = localstore.NewMemory()
	} else {
		store = sqlite
	}

	return &environment{
		cfg:    cfg,
		client: api.NewClient(cfg.GetAPIBaseURL(), cfg.GetRequestTimeout()),
		store:  store,
		state:  session.NewState(ctx, store),
	}, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	defer logger.Close()

	env, err := openEnvironment(cmd.Context())
	if err != nil {
		return err
	}
	defer env.Close()

	logger.WithComponent("cmd").Info("starting", "version", version, "api", env.client.BaseURL())

	m := app.New(env.cfg, env.client, env.state, env.store, version)
	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running app: %w", err)
	}
	return nil
}
