package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"

	"github.com/riadafridishibly/fsprops/cache"
	"github.com/riadafridishibly/fsprops/config"
	"github.com/riadafridishibly/fsprops/logging"
	"github.com/riadafridishibly/fsprops/properties"
	"github.com/riadafridishibly/fsprops/scanner"
	"github.com/riadafridishibly/fsprops/tui"
	"github.com/riadafridishibly/fsprops/vfs"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func tempDir() string {
	if runtime.GOOS == "darwin" {
		return "/tmp"
	}
	return os.TempDir()
}

// env holds what every command shares.
type env struct {
	cfg     config.Config
	logPath string
	fs      *vfs.OS
	folders *vfs.Broadcaster
	cache   *cache.Cache
}

func setup() (*env, error) {
	cfg, err := config.Load(".env")
	if err != nil {
		return nil, err
	}

	logPath := cfg.LogFile
	if logPath == "" {
		logFile, err := os.CreateTemp(tempDir(), "fsprops-*.log")
		if err != nil {
			return nil, fmt.Errorf("creating log file: %w", err)
		}
		logPath = logFile.Name()
		logFile.Close()
	}
	if err := logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, OutputPath: logPath}); err != nil {
		return nil, fmt.Errorf("initializing logger: %w", err)
	}

	e := &env{
		cfg:     cfg,
		logPath: logPath,
		fs:      vfs.NewOS(),
		folders: vfs.NewBroadcaster(),
	}

	if cfg.CacheEnabled {
		var c *cache.Cache
		if cfg.CachePath != "" {
			c, err = cache.Open(cfg.CachePath)
		} else {
			c, err = cache.NewCache()
		}
		if err != nil {
			// If cache fails, continue without it
			logging.L().Warn("cache disabled", zap.Error(err))
		} else {
			e.cache = c
		}
	}
	return e, nil
}

func (e *env) Close() {
	if e.cache != nil {
		e.cache.Close()
	}
	_ = logging.Sync()
}

// resolve makes p absolute and fetches its entry. The dialog requires the
// target to exist.
func (e *env) resolve(ctx context.Context, p string) (vfs.Entry, error) {
	absPath, err := filepath.Abs(p)
	if err != nil {
		return vfs.Entry{}, fmt.Errorf("resolving path %s: %w", p, err)
	}
	entry, err := e.fs.Stat(ctx, absPath)
	if err != nil {
		return vfs.Entry{}, err
	}
	return entry, nil
}

func (e *env) committer() *properties.Committer {
	opts := []properties.CommitterOption{
		properties.WithRefreshOnFailure(e.cfg.RefreshOnFailure),
	}
	if e.cache != nil {
		rec := cache.Recorder{Cache: e.cache}
		opts = append(opts, properties.WithOnCommitted(func(oldPath, _ string) { rec.Forget(oldPath) }))
	}
	return properties.NewCommitter(e.fs, e.folders, opts...)
}

type entryFlags struct {
	shortcut bool
	pid      string
}

func (f *entryFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.shortcut, "shortcut", false, "treat the entry as a shortcut, hiding its extension")
	cmd.Flags().StringVar(&f.pid, "pid", "", "id of the program that opens the entry")
}

func (e *env) general(entry vfs.Entry, f entryFlags) *properties.General {
	return properties.NewGeneral(entry, e.fs,
		properties.WithShortcut(f.shortcut),
		properties.WithPID(f.pid),
		properties.WithLookup(properties.DefaultApps),
		properties.WithScannerOptions(
			scanner.WithProgressInterval(e.cfg.ProgressInterval),
			scanner.WithLogger(logging.L()),
		),
	)
}

func newRootCmd() *cobra.Command {
	var flags entryFlags
	var theme string

	cmd := &cobra.Command{
		Use:           "fsprops [path]",
		Short:         "Show the properties of a file or folder and rename it",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			target := "."
			if len(args) > 0 {
				target = args[0]
			}

			e, err := setup()
			if err != nil {
				return err
			}
			defer e.Close()
			fmt.Fprintln(cmd.OutOrStdout(), "Logfile is being written in:", e.logPath)

			ctx := cmd.Context()
			entry, err := e.resolve(ctx, target)
			if err != nil {
				return err
			}

			if theme == "" {
				theme = e.cfg.Theme
			}
			opts := []tui.Option{
				tui.WithTheme(theme),
				tui.WithHomeTilde(e.cfg.ReplaceHomeWithTilde),
			}
			if e.cache != nil {
				opts = append(opts, tui.WithDialogOptions(properties.WithRecorder(cache.Recorder{Cache: e.cache})))
			}

			refreshed := e.folders.Subscribe()
			defer e.folders.Unsubscribe(refreshed)
			go func() {
				for dir := range refreshed {
					logging.L().Info("folder refresh requested", zap.String("path", dir))
				}
			}()

			app := tui.NewApp(e.general(entry, flags), e.committer(), opts...)
			if err := app.Run(ctx); err != nil {
				return fmt.Errorf("running application: %w", err)
			}
			return app.LastErr()
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&theme, "theme", "", "color theme (catppuccin, dracula, gruvbox-dark, nord)")

	cmd.AddCommand(newStatCmd(), newRenameCmd())
	return cmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		var renameErr *properties.RenameError
		if errors.As(err, &renameErr) {
			fmt.Fprintf(os.Stderr, "Rename failed: %v\n", err)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
