package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sandeepkv93/focusnova/internal/app"
	"github.com/sandeepkv93/focusnova/internal/config"
	"github.com/sandeepkv93/focusnova/internal/logging"
	"github.com/sandeepkv93/focusnova/internal/scheduler"
	"github.com/sandeepkv93/focusnova/internal/state"
	"github.com/sandeepkv93/focusnova/internal/storage"
	"github.com/sandeepkv93/focusnova/internal/update"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type runtime struct {
	cfg    config.Config
	logger *zap.Logger
}

type rootFlags struct {
	configPath string
	dbPath     string
	backend    string
	logFile    string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	var flags rootFlags
	rt := &runtime{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:           "focusnova",
		Short:         "FocusNova - focus timer, daily missions, clean mode and a scripted mentor",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := resolveConfig(cmd, flags)
			if err != nil {
				return err
			}
			logger, err := logging.New(logging.Options{File: cfg.LogFile, Verbose: cfg.Verbose})
			if err != nil {
				return err
			}
			rt.cfg = cfg
			rt.logger = logger
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			_ = rt.logger.Sync()
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			return runTUI(rt)
		},
	}
	root.PersistentFlags().StringVar(&flags.configPath, "config", config.DefaultPath(), "config file (YAML)")
	root.PersistentFlags().StringVar(&flags.dbPath, "db", "", "data file path (overrides config)")
	root.PersistentFlags().StringVar(&flags.backend, "backend", "", "storage backend: sqlite|file|memory")
	root.PersistentFlags().StringVar(&flags.logFile, "log-file", "", "write JSON logs to this file")
	root.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(newResetCmd(rt), newStatsCmd(rt), newTasksCmd(rt))
	return root
}

// resolveConfig layers defaults, the config file, the environment and
// finally the command-line flags.
func resolveConfig(cmd *cobra.Command, flags rootFlags) (config.Config, error) {
	cfg, err := config.LoadFile(config.Default(), flags.configPath)
	if err != nil {
		return cfg, err
	}
	cfg = config.ApplyEnv(cfg)
	pf := cmd.Flags()
	if pf.Changed("db") {
		cfg.DBPath = flags.dbPath
	}
	if pf.Changed("backend") {
		cfg.Backend = strings.ToLower(flags.backend)
	}
	if pf.Changed("log-file") {
		cfg.LogFile = flags.logFile
	}
	if pf.Changed("verbose") {
		cfg.Verbose = flags.verbose
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func openStore(ctx context.Context, rt *runtime) (*state.Store, storage.KV, error) {
	kv, err := storage.Open(rt.cfg.Backend, rt.cfg.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s store: %w", rt.cfg.Backend, err)
	}
	store := state.Load(ctx, kv,
		state.WithLogger(rt.logger.Named("state")),
		state.WithUserName(rt.cfg.UserName),
	)
	return store, kv, nil
}

func runTUI(rt *runtime) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, kv, err := openStore(ctx, rt)
	if err != nil {
		return err
	}
	defer kv.Close()

	engine := scheduler.NewEngine(rt.cfg.SchedulerBuffer, rt.logger.Named("scheduler"))
	engine.Start()
	defer engine.Stop()

	opts := app.Options{
		DurationMinutes:  rt.cfg.DurationMinutes,
		MentorReplyDelay: rt.cfg.MentorReplyDelay(),
		Logger:           rt.logger.Named("app"),
	}
	if rt.cfg.DesktopNotifications {
		opts.Notifier = update.ExecDesktopNotifier{}
	}
	application := app.New(store, engine, opts)
	defer application.Close()

	rt.logger.Info("starting tui",
		zap.String("backend", rt.cfg.Backend),
		zap.String("db", rt.cfg.DBPath),
		zap.Int("duration_minutes", rt.cfg.DurationMinutes),
	)
	program := tea.NewProgram(update.NewModel(application, update.Options{
		Jobs:    engine.C(),
		Theme:   rt.cfg.Theme,
		Context: ctx,
	}), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("focusnova failed: %w", err)
	}
	return nil
}

func newResetCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Delete all stored tasks, points and stats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store, kv, err := openStore(ctx, rt)
			if err != nil {
				return err
			}
			defer kv.Close()
			if err := store.Reset(ctx); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "store cleared")
			return nil
		},
	}
}

func newStatsCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print points and completed tasks per day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, kv, err := openStore(cmd.Context(), rt)
			if err != nil {
				return err
			}
			defer kv.Close()
			out := cmd.OutOrStdout()
			stats := store.Stats()
			_, _ = fmt.Fprintf(out, "points: %d\n", store.Points())
			_, _ = fmt.Fprintf(out, "completed: %d\n", stats.Total())
			for _, day := range stats.Days() {
				_, _ = fmt.Fprintf(out, "%s %d\n", day, stats[day])
			}
			return nil
		},
	}
}

func newTasksCmd(rt *runtime) *cobra.Command {
	var pendingOnly bool
	tasksCmd := &cobra.Command{
		Use:   "tasks",
		Short: "List stored tasks, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, kv, err := openStore(cmd.Context(), rt)
			if err != nil {
				return err
			}
			defer kv.Close()
			out := cmd.OutOrStdout()
			printed := 0
			for i, task := range store.Tasks() {
				if pendingOnly && task.Done {
					continue
				}
				mark := " "
				if task.Done {
					mark = "x"
				}
				_, _ = fmt.Fprintf(out, "%d. [%s] %s\n", i+1, mark, task.Text)
				printed++
			}
			if printed == 0 {
				empty := "no tasks"
				if pendingOnly {
					empty = "no pending tasks"
				}
				_, _ = fmt.Fprintln(out, empty)
			}
			return nil
		},
	}
	tasksCmd.Flags().BoolVar(&pendingOnly, "pending", false, "only show tasks not done yet")
	return tasksCmd
}
