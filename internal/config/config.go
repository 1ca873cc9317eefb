// Package config provides configuration types, defaults, validation and
// persistence for mlv.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/zjrosen/mlv/internal/diff"
	"github.com/zjrosen/mlv/internal/highlight"
	"github.com/zjrosen/mlv/internal/log"
	"github.com/zjrosen/mlv/internal/tracing"
)

// Config holds all configuration options for mlv.
type Config struct {
	Archive   ArchiveConfig   `mapstructure:"archive"`
	Highlight HighlightConfig `mapstructure:"highlight"`
	Diff      DiffConfig      `mapstructure:"diff"`
	UI        UIConfig        `mapstructure:"ui"`
	Theme     ThemeConfig     `mapstructure:"theme"`
	Tracing   tracing.Config  `mapstructure:"tracing"`
	Log       LogConfig       `mapstructure:"log"`
}

// ArchiveConfig selects the mailbox to open.
type ArchiveConfig struct {
	// Path is the mbox file opened when no archive argument is given.
	Path string `mapstructure:"path"`
	// Follow reloads the archive when the file changes on disk.
	Follow bool `mapstructure:"follow"`
}

// HighlightConfig configures syntax highlighting of diffs.
type HighlightConfig struct {
	// Theme is a chroma style name (see 'mlv themes').
	Theme string `mapstructure:"theme"`
	// Format is "terminal" or "html". It picks the output of 'mlv diff';
	// the viewer and 'mlv show' always render for the terminal.
	Format string `mapstructure:"format"`
	// Preload lists languages whose lexers are resolved at startup.
	Preload []string `mapstructure:"preload"`
}

// DiffConfig configures the diff render pipeline.
type DiffConfig struct {
	// Parser is "gitdiff" (strict, default) or "lenient".
	Parser   string `mapstructure:"parser"`
	WordDiff bool   `mapstructure:"word_diff"`
	TabWidth int    `mapstructure:"tab_width"`
}

// UIConfig holds user interface options.
type UIConfig struct {
	// CollapseDepth collapses quotes at this depth or deeper when a message
	// opens. 0 keeps everything expanded.
	CollapseDepth int  `mapstructure:"collapse_depth"`
	Wrap          bool `mapstructure:"wrap"`
	Mouse         bool `mapstructure:"mouse"`
	ShowStatusBar bool `mapstructure:"show_status_bar"`
}

// ThemeConfig holds the UI color theme.
type ThemeConfig struct {
	// Preset loads a built-in UI theme as the base (see 'mlv themes').
	Preset string `mapstructure:"preset"`

	// Mode forces "light" or "dark". Empty uses terminal detection.
	Mode string `mapstructure:"mode"`

	// Colors overrides individual color tokens, nested or in quoted dot
	// notation ("quote.depth1": "#FF0000").
	Colors map[string]any `mapstructure:"colors"`
}

// LogConfig controls the debug log written with --debug.
type LogConfig struct {
	// Level is the minimum level: debug, info, warn or error.
	Level string `mapstructure:"level"`
	// Path of the debug log file.
	Path string `mapstructure:"path"`
}

// FlattenedColors returns Colors flattened to dot-notation keys.
func (t ThemeConfig) FlattenedColors() map[string]string {
	result := make(map[string]string)
	flattenColors("", t.Colors, result)
	return result
}

func flattenColors(prefix string, m map[string]any, result map[string]string) {
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}

		switch val := v.(type) {
		case string:
			result[key] = val
		case map[string]any:
			flattenColors(key, val, result)
		case map[any]any:
			converted := make(map[string]any, len(val))
			for mk, mv := range val {
				if s, ok := mk.(string); ok {
					converted[s] = mv
				}
			}
			flattenColors(key, converted, result)
		}
	}
}

// DefaultConfigDir returns ~/.config/mlv, or "" when the home directory is
// unknown.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "mlv")
}

// DefaultTracesFilePath returns ~/.config/mlv/traces/traces.jsonl.
func DefaultTracesFilePath() string {
	dir := DefaultConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "traces", "traces.jsonl")
}

// Defaults returns a Config with default values.
func Defaults() Config {
	tc := tracing.DefaultConfig()
	tc.FilePath = DefaultTracesFilePath()

	return Config{
		Highlight: HighlightConfig{
			Theme:  highlight.DefaultTheme,
			Format: string(highlight.FormatTerminal),
		},
		Diff: DiffConfig{
			Parser:   diff.ParserGitDiff,
			WordDiff: true,
			TabWidth: 4,
		},
		UI: UIConfig{
			CollapseDepth: 2,
			Wrap:          true,
			Mouse:         true,
			ShowStatusBar: true,
		},
		Tracing: tc,
		Log: LogConfig{
			Level: "debug",
			Path:  "debug.log",
		},
	}
}

// ValidateHighlight checks the theme and output format.
func ValidateHighlight(h HighlightConfig) error {
	if h.Theme != "" && !slices.Contains(highlight.Themes(), h.Theme) {
		return fmt.Errorf("highlight.theme %q is not a known theme (run 'mlv themes')", h.Theme)
	}
	if _, err := highlight.ParseFormat(h.Format); err != nil {
		return fmt.Errorf("highlight.format: %w", err)
	}
	return nil
}

// ValidateDiff checks the diff pipeline options.
func ValidateDiff(d DiffConfig) error {
	if _, err := diff.NewParser(d.Parser); err != nil {
		return fmt.Errorf("diff.parser: %w", err)
	}
	if d.TabWidth < 0 || d.TabWidth > 16 {
		return fmt.Errorf("diff.tab_width must be between 0 and 16, got %d", d.TabWidth)
	}
	return nil
}

// ValidateUI checks user interface options.
func ValidateUI(ui UIConfig) error {
	if ui.CollapseDepth < 0 {
		return fmt.Errorf("ui.collapse_depth must not be negative, got %d", ui.CollapseDepth)
	}
	return nil
}

// ValidateTheme checks the theme mode. Presets are checked when applied.
func ValidateTheme(t ThemeConfig) error {
	switch t.Mode {
	case "", "light", "dark":
		return nil
	default:
		return fmt.Errorf("theme.mode must be \"light\", \"dark\" or empty, got %q", t.Mode)
	}
}

// ValidateTracing checks tracing configuration. Empty values use defaults.
func ValidateTracing(t tracing.Config) error {
	if t.SampleRate < 0.0 || t.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", t.SampleRate)
	}

	switch t.Exporter {
	case "", "none", "file", "stdout", "otlp":
	default:
		return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", t.Exporter)
	}

	if t.Enabled {
		if t.Exporter == "file" && t.FilePath == "" {
			return fmt.Errorf("tracing.file_path is required when exporter is \"file\"")
		}
		if t.Exporter == "otlp" && t.OTLPEndpoint == "" {
			return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
		}
	}
	return nil
}

// Validate runs every section validator and joins the failures.
func (c Config) Validate() error {
	return errors.Join(
		ValidateHighlight(c.Highlight),
		ValidateDiff(c.Diff),
		ValidateUI(c.UI),
		ValidateTheme(c.Theme),
		ValidateTracing(c.Tracing),
	)
}

// DefaultConfigTemplate returns the default config as commented YAML.
func DefaultConfigTemplate() string {
	return `# mlv configuration

# Mailbox archive
archive:
  # path: ~/mail/lkml.mbox   # opened when no archive argument is given
  follow: false              # reload when the file changes on disk

# Syntax highlighting for patches
highlight:
  theme: monokai    # any chroma style, see 'mlv themes'; t cycles themes in the TUI
  format: terminal  # default output of 'mlv diff': terminal or html
  # preload: [c, go, rust]

# Diff rendering
diff:
  parser: gitdiff   # gitdiff (strict) or lenient (tolerates mangled patches)
  word_diff: true   # emphasise changed words in paired -/+ lines
  tab_width: 4

# UI settings
ui:
  collapse_depth: 2      # quotes this deep start collapsed (0 = never)
  wrap: true
  mouse: true            # click a quote header to toggle it
  show_status_bar: true

# UI colors
theme:
  # preset: nord
  # mode: dark
  # colors:
  #   quote.depth1: "#8BE9FD"
  #   diff.added: "#50FA7B"

# Tracing (spans around archive loading and diff rendering)
# tracing:
#   enabled: false
#   exporter: file                              # none, file, stdout, otlp
#   file_path: ~/.config/mlv/traces/traces.jsonl
#   otlp_endpoint: localhost:4317
#   sample_rate: 1.0

# Debug log (written with --debug or MLV_DEBUG=1)
log:
  level: debug
  path: debug.log
`
}

// WriteDefaultConfig creates a config file at configPath with defaults and
// comments, creating the parent directory if needed.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "created default config", "path", configPath)
	return nil
}
