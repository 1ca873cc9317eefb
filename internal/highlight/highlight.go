// Package highlight is the process-wide syntax highlighting service. It
// renders code with chroma into HTML or ANSI markup, memoizes results per
// theme and broadcasts theme changes to subscribers.
//
// Every result carries the theme version it was computed under. Consumers
// that highlight asynchronously compare it with ThemeVersion (Result.IsStale)
// and drop results that finished after a theme change.
package highlight

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"

	"github.com/zjrosen/mlv/internal/cachemanager"
	"github.com/zjrosen/mlv/internal/log"
	"github.com/zjrosen/mlv/internal/pubsub"
)

var (
	// ErrUnknownTheme is returned for theme names chroma does not know.
	ErrUnknownTheme = errors.New("unknown theme")
	// ErrUnknownLanguage is reported when no lexer matches a language tag.
	ErrUnknownLanguage = errors.New("unknown language")
)

// DefaultTheme is used when the config names none.
const DefaultTheme = "monokai"

// cacheTTL bounds how long an entry for a still-current theme lives.
const cacheTTL = 30 * time.Minute

// Variant selects block (multi-line) or inline (single line) output.
type Variant string

const (
	Block  Variant = "block"
	Inline Variant = "inline"
)

// ThemeChange is broadcast after SetTheme succeeds.
type ThemeChange struct {
	Theme   string
	Version uint64
}

// Result is highlighted markup. Fallback is set when highlighting failed
// and Markup holds escaped plain text instead; Err says why.
type Result struct {
	Markup   string
	Version  uint64
	Fallback bool
	Err      error
}

// IsStale reports whether r was computed under a theme that is no longer
// active on s.
func (r Result) IsStale(s *Service) bool {
	return r.Version != s.ThemeVersion()
}

// Config configures a Service.
type Config struct {
	Theme   string
	Format  Format
	Preload []string

	// Profile forces the terminal color profile; nil detects it from the
	// environment.
	Profile *termenv.Profile
}

type cacheKey string

func makeKey(version uint64, theme, mode, lang, code string) cacheKey {
	var b strings.Builder
	b.Grow(len(theme) + len(mode) + len(lang) + len(code) + 24)
	b.WriteString(strconv.FormatUint(version, 10))
	for _, part := range []string{theme, mode, lang, code} {
		b.WriteByte(0)
		b.WriteString(part)
	}
	return cacheKey(b.String())
}

// Service highlights code. It is safe for concurrent use.
type Service struct {
	format    Format
	formatter formatterSet

	mu      sync.RWMutex
	theme   string
	style   *chroma.Style
	version atomic.Uint64

	lexers  sync.Map // lang -> chroma.Lexer
	cache   cachemanager.CacheManager[cacheKey, string]
	renders *cachemanager.ReadThroughCache[cacheKey, string, renderInput]
	broker  *pubsub.Broker[ThemeChange]
}

// New builds a Service. The theme must exist in the chroma style registry.
// Languages in cfg.Preload are resolved up front; unknown ones are logged.
func New(cfg Config) (*Service, error) {
	theme := cfg.Theme
	if theme == "" {
		theme = DefaultTheme
	}
	style, ok := styles.Registry[theme]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTheme, theme)
	}

	format := cfg.Format
	if format == "" {
		format = FormatTerminal
	}
	profile := termenv.EnvColorProfile()
	if cfg.Profile != nil {
		profile = *cfg.Profile
	}
	formatter, err := newFormatterSet(format, profile)
	if err != nil {
		return nil, err
	}

	s := &Service{
		format:    format,
		formatter: formatter,
		theme:     theme,
		style:     style,
		cache:     cachemanager.NewInMemoryCacheManager[cacheKey, string]("highlight", cacheTTL, cachemanager.DefaultCleanupInterval),
		broker:    pubsub.NewBroker[ThemeChange](),
	}
	s.version.Store(1)

	// A result computed under a superseded theme is returned (callers drop
	// it via IsStale) but never cached.
	s.renders = cachemanager.NewReadThroughCache(s.cache,
		func(_ context.Context, in renderInput) (string, error) {
			return s.render(in.code, in.lang, in.style, in.variant)
		}, false).
		WithKeep(func(in renderInput, _ string) bool {
			return s.version.Load() == in.version
		})

	if err := s.Preload(cfg.Preload...); err != nil {
		log.Warn(log.CatHighlight, "preload incomplete", "error", err)
	}
	return s, nil
}

// Close ends all subscriptions.
func (s *Service) Close() {
	if n := s.broker.Dropped(); n > 0 {
		log.Warn(log.CatHighlight, "theme changes dropped by slow subscribers", "count", n)
	}
	s.broker.Close()
}

// Format returns the output format of the service.
func (s *Service) Format() Format {
	return s.format
}

// Theme returns the active theme name.
func (s *Service) Theme() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.theme
}

// ThemeVersion returns the monotonic theme version. It starts at 1 and
// increments on every successful SetTheme.
func (s *Service) ThemeVersion() uint64 {
	return s.version.Load()
}

// Themes lists the available theme names, sorted.
func Themes() []string {
	return styles.Names()
}

// SetTheme switches the active theme. Every cached result becomes
// unreachable and subscribers receive a ThemeChange.
func (s *Service) SetTheme(name string) error {
	style, ok := styles.Registry[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTheme, name)
	}

	s.mu.Lock()
	s.theme = name
	s.style = style
	version := s.version.Add(1)
	s.mu.Unlock()

	if err := s.cache.Flush(context.Background()); err != nil {
		log.ErrorErr(log.CatHighlight, "flush after theme change failed", err)
	}

	log.Info(log.CatHighlight, "theme changed", "theme", name, "version", version)
	s.broker.Publish(pubsub.ThemeChangedEvent, ThemeChange{Theme: name, Version: version})
	return nil
}

// Subscribe delivers ThemeChange events until ctx is done or unsubscribe is
// called.
func (s *Service) Subscribe(ctx context.Context) (<-chan pubsub.Event[ThemeChange], func()) {
	ctx, cancel := context.WithCancel(ctx)
	return s.broker.Subscribe(ctx), cancel
}

// Preload resolves the lexers for langs so the first Highlight call does not
// pay for it. Unknown languages are reported together.
func (s *Service) Preload(langs ...string) error {
	var errs []error
	for _, lang := range langs {
		if _, err := s.lexer(lang); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Highlight renders a block of code.
func (s *Service) Highlight(ctx context.Context, code, lang string) Result {
	return s.highlight(ctx, code, lang, Block)
}

// HighlightInline renders a single line without block wrapping or trailing
// newline.
func (s *Service) HighlightInline(ctx context.Context, code, lang string) Result {
	return s.highlight(ctx, code, lang, Inline)
}

func (s *Service) snapshot() (theme string, style *chroma.Style, version uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.theme, s.style, s.version.Load()
}

// renderInput is everything one render depends on.
type renderInput struct {
	code    string
	lang    string
	style   *chroma.Style
	variant Variant
	version uint64
}

func (s *Service) highlight(ctx context.Context, code, lang string, variant Variant) Result {
	theme, style, version := s.snapshot()
	key := makeKey(version, theme, string(s.format)+"/"+string(variant), lang, code)

	markup, err := s.renders.Get(ctx, key, renderInput{
		code:    code,
		lang:    lang,
		style:   style,
		variant: variant,
		version: version,
	}, cacheTTL)
	if err != nil {
		log.Debug(log.CatHighlight, "falling back to plain text", "lang", lang, "error", err)
		return Result{Markup: s.plain(code, variant), Version: version, Fallback: true, Err: err}
	}
	return Result{Markup: markup, Version: version}
}

func (s *Service) lexer(lang string) (chroma.Lexer, error) {
	if l, ok := s.lexers.Load(lang); ok {
		return l.(chroma.Lexer), nil
	}
	l := lexers.Get(lang)
	if l == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLanguage, lang)
	}
	l = chroma.Coalesce(l)
	s.lexers.Store(lang, l)
	return l, nil
}

func (s *Service) render(code, lang string, style *chroma.Style, variant Variant) (string, error) {
	lexer, err := s.lexer(lang)
	if err != nil {
		return "", err
	}

	it, err := lexer.Tokenise(nil, code)
	if err != nil {
		return "", fmt.Errorf("tokenise %s: %w", lang, err)
	}

	var b strings.Builder
	if err := s.formatter.get(variant).Format(&b, style, it); err != nil {
		return "", fmt.Errorf("format %s: %w", lang, err)
	}

	out := b.String()
	if variant == Inline {
		out = trimTrailingNewline(out)
	}
	return out, nil
}

// plain is the fallback rendering: escaped for HTML, escape sequences
// stripped for terminals.
func (s *Service) plain(code string, variant Variant) string {
	if variant == Inline {
		code = strings.TrimSuffix(code, "\n")
	}
	if s.format == FormatHTML {
		return html.EscapeString(code)
	}
	return ansi.Strip(code)
}

// trimTrailingNewline removes the newline chroma lexers append, which may
// sit inside the last HTML span or before a trailing SGR reset.
func trimTrailingNewline(s string) string {
	i := strings.LastIndex(s, "\n")
	if i < 0 {
		return s
	}
	rest := s[i+1:]
	if ansi.Strip(strings.ReplaceAll(rest, "</span>", "")) != "" {
		return s
	}
	return s[:i] + rest
}
