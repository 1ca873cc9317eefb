package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/mlv/internal/app"
	"github.com/zjrosen/mlv/internal/archive"
	"github.com/zjrosen/mlv/internal/config"
	"github.com/zjrosen/mlv/internal/diff"
	"github.com/zjrosen/mlv/internal/highlight"
	"github.com/zjrosen/mlv/internal/log"
	"github.com/zjrosen/mlv/internal/tracing"
	"github.com/zjrosen/mlv/internal/ui/styles"
)

func init() {
	// Query the terminal background before any Bubble Tea program starts so
	// the OSC 11 reply does not race the input loop.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

// localConfigPath is checked before the user config directory.
const localConfigPath = ".mlv/config.yaml"

var (
	version   = "dev"
	cfgFile   string
	debugFlag bool
	cfg       config.Config
)

var rootCmd = &cobra.Command{
	Use:   "mlv [archive]",
	Short: "A terminal viewer for mailing-list archives",
	Long: `mlv browses mbox mailing-list archives: threads, quoted replies and
patches with syntax-highlighted, word-level diffs.

Without an argument the archive configured under archive.path is opened.`,
	Version:      version,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         runApp,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/mlv/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "d", false,
		"write a debug log (also enabled by MLV_DEBUG)")
	rootCmd.Flags().BoolP("follow", "f", false,
		"reload the archive when the file changes")

	_ = viper.BindPFlag("archive.follow", rootCmd.Flags().Lookup("follow"))
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("highlight.theme", defaults.Highlight.Theme)
	viper.SetDefault("highlight.format", defaults.Highlight.Format)
	viper.SetDefault("diff.parser", defaults.Diff.Parser)
	viper.SetDefault("diff.word_diff", defaults.Diff.WordDiff)
	viper.SetDefault("diff.tab_width", defaults.Diff.TabWidth)
	viper.SetDefault("ui.collapse_depth", defaults.UI.CollapseDepth)
	viper.SetDefault("ui.wrap", defaults.UI.Wrap)
	viper.SetDefault("ui.mouse", defaults.UI.Mouse)
	viper.SetDefault("ui.show_status_bar", defaults.UI.ShowStatusBar)
	viper.SetDefault("tracing.enabled", defaults.Tracing.Enabled)
	viper.SetDefault("tracing.exporter", defaults.Tracing.Exporter)
	viper.SetDefault("tracing.file_path", defaults.Tracing.FilePath)
	viper.SetDefault("tracing.otlp_endpoint", defaults.Tracing.OTLPEndpoint)
	viper.SetDefault("tracing.sample_rate", defaults.Tracing.SampleRate)
	viper.SetDefault("tracing.service_name", defaults.Tracing.ServiceName)
	viper.SetDefault("log.level", defaults.Log.Level)
	viper.SetDefault("log.path", defaults.Log.Path)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .mlv/config.yaml (current directory)
		// 2. ~/.config/mlv/config.yaml (user config)
		if _, err := os.Stat(localConfigPath); err == nil {
			viper.SetConfigFile(localConfigPath)
		} else {
			viper.AddConfigPath(config.DefaultConfigDir())
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			// First run: write the commented defaults to the user config.
			if dir := config.DefaultConfigDir(); dir != "" {
				path := filepath.Join(dir, "config.yaml")
				if writeErr := config.WriteDefaultConfig(path); writeErr == nil {
					viper.SetConfigFile(path)
					_ = viper.ReadInConfig()
				}
			}
		}
	}

	_ = viper.Unmarshal(&cfg)
}

// initLogging turns on the debug log when --debug or MLV_DEBUG is set. The
// returned cleanup is never nil.
func initLogging(prefix string) (func(), error) {
	if !debugFlag && os.Getenv("MLV_DEBUG") == "" {
		log.SetEnabled(false)
		return func() {}, nil
	}

	logPath := os.Getenv("MLV_LOG")
	if logPath == "" {
		logPath = cfg.Log.Path
	}
	if logPath == "" {
		logPath = "debug.log"
	}

	cleanup, err := log.InitWithTeaLog(logPath, prefix)
	if err != nil {
		return func() {}, fmt.Errorf("initializing logging: %w", err)
	}
	log.SetMinLevel(log.ParseLevel(cfg.Log.Level))
	return cleanup, nil
}

// services bundles what every command builds from the config.
type services struct {
	tracing     *tracing.Provider
	highlighter *highlight.Service
	pipeline    *diff.Pipeline
	loader      *archive.Loader
}

// newServices builds the shared services. format is fixed by the caller:
// terminal output never gets HTML markup.
func newServices(format highlight.Format) (*services, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	tp, err := tracing.NewProvider(cfg.Tracing)
	if err != nil {
		return nil, fmt.Errorf("initializing tracing: %w", err)
	}

	hl, err := highlight.New(highlight.Config{
		Theme:   cfg.Highlight.Theme,
		Format:  format,
		Preload: cfg.Highlight.Preload,
	})
	if err != nil {
		_ = tp.Shutdown(context.Background())
		return nil, err
	}

	parser, err := diff.NewParser(cfg.Diff.Parser)
	if err != nil {
		hl.Close()
		_ = tp.Shutdown(context.Background())
		return nil, err
	}

	return &services{
		tracing:     tp,
		highlighter: hl,
		pipeline: diff.NewPipeline(
			diff.WithParser(parser),
			diff.WithTracer(tp.Tracer()),
			diff.WithWordDiff(cfg.Diff.WordDiff),
		),
		loader: archive.NewLoader(archive.WithTracer(tp.Tracer())),
	}, nil
}

func (s *services) Close() {
	s.highlighter.Close()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.tracing.Shutdown(ctx); err != nil {
		log.ErrorErr(log.CatTrace, "tracing shutdown failed", err)
	}
}

func applyUITheme() error {
	return styles.ApplyTheme(styles.ThemeConfig{
		Preset: cfg.Theme.Preset,
		Mode:   cfg.Theme.Mode,
		Colors: cfg.Theme.FlattenedColors(),
	})
}

func runApp(_ *cobra.Command, args []string) error {
	cleanup, err := initLogging("mlv")
	if err != nil {
		return err
	}
	defer cleanup()

	path := cfg.Archive.Path
	if len(args) == 1 {
		path = args[0]
	}
	if path == "" {
		return errors.New("no archive given: pass a path or set archive.path in the config")
	}

	if err := applyUITheme(); err != nil {
		return fmt.Errorf("applying theme: %w", err)
	}

	svc, err := newServices(highlight.FormatTerminal)
	if err != nil {
		return err
	}
	defer svc.Close()

	ctx := context.Background()
	a, err := svc.loader.Load(ctx, path)
	if err != nil {
		return fmt.Errorf("loading archive: %w", err)
	}
	log.Info(log.CatArchive, "archive loaded", "path", path, "messages", len(a.Messages), "threads", len(a.Threads))

	var reloader *app.Reloader
	if cfg.Archive.Follow {
		reloader, err = app.NewReloader(path, svc.loader, 0)
		if err != nil {
			return fmt.Errorf("watching archive: %w", err)
		}
		if err := reloader.Start(ctx); err != nil {
			_ = reloader.Close()
			return fmt.Errorf("watching archive: %w", err)
		}
	}

	configFilePath := viper.ConfigFileUsed()
	if configFilePath == "" {
		configFilePath = filepath.Join(config.DefaultConfigDir(), "config.yaml")
	}

	zone.NewGlobal()
	defer zone.Close()

	model := app.New(app.Options{
		Archive:     a,
		Loader:      svc.loader,
		Config:      cfg,
		ConfigPath:  configFilePath,
		Highlighter: svc.highlighter,
		Pipeline:    svc.pipeline,
		Reloader:    reloader,
	})

	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.UI.Mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	p := tea.NewProgram(&model, opts...)

	_, err = p.Run()

	if closeErr := model.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
