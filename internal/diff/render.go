package diff

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/mlv/internal/log"
	"github.com/zjrosen/mlv/internal/tracing"
)

// Pipeline renders raw diff text into file summaries.
type Pipeline struct {
	parser   Parser
	tracer   trace.Tracer
	wordDiff bool
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithParser replaces the default go-gitdiff parser.
func WithParser(p Parser) Option {
	return func(pl *Pipeline) { pl.parser = p }
}

// WithTracer records spans for each render and segment parse.
func WithTracer(t trace.Tracer) Option {
	return func(pl *Pipeline) { pl.tracer = t }
}

// WithWordDiff toggles intra-line segments on paired deleted/added lines.
func WithWordDiff(enabled bool) Option {
	return func(pl *Pipeline) { pl.wordDiff = enabled }
}

// NewPipeline returns a pipeline using go-gitdiff with word diff enabled.
func NewPipeline(opts ...Option) *Pipeline {
	p := &Pipeline{
		parser:   GitDiffParser{},
		tracer:   tracing.Noop(),
		wordDiff: true,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Render extracts the diff from raw (restricted to ranges when given),
// parses it and lays out every file.
//
// A diff with a single segment either parses or fails as a whole with
// ErrUnparsable. A diff split into several "diff --git" segments tolerates
// segments that fail: they are logged and dropped, and the rest are merged
// per file.
func (p *Pipeline) Render(ctx context.Context, raw string, ranges []LineRange) Result {
	ctx, span := p.tracer.Start(ctx, tracing.SpanDiffRender)
	defer span.End()

	ext := Extract(raw, ranges)
	result := Result{Raw: ext.Diff, Prose: ext.Prose}
	span.SetAttributes(
		attribute.Int(tracing.AttrDiffBytes, len(ext.Diff)),
		attribute.Int(tracing.AttrDiffRanges, len(ranges)),
	)

	segments := SplitSegments(ext.Diff)
	if len(segments) == 0 {
		return result
	}
	span.SetAttributes(attribute.Int(tracing.AttrDiffSegments, len(segments)))

	files, err := p.parseSegments(ctx, segments)
	if err != nil {
		tracing.RecordError(span, err)
		log.Warn(log.CatDiff, "diff unparsable", "segments", len(segments), "error", err)
		result.Err = err
		return result
	}

	result.Files = make([]FileSummary, 0, len(files))
	for _, fc := range files {
		result.Files = append(result.Files, p.summarize(ctx, fc))
	}
	span.SetAttributes(attribute.Int(tracing.AttrDiffFiles, len(result.Files)))

	log.Debug(log.CatDiff, "diff rendered",
		"files", len(result.Files),
		"additions", result.Additions(),
		"deletions", result.Deletions())
	return result
}

func (p *Pipeline) parseSegments(ctx context.Context, segments []string) ([]FileChange, error) {
	if len(segments) == 1 {
		files, err := p.parseSegment(ctx, 0, segments[0])
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrUnparsable, err)
		}
		if len(files) == 0 {
			return nil, ErrUnparsable
		}
		return files, nil
	}

	var all []FileChange
	for i, seg := range segments {
		files, err := p.parseSegment(ctx, i, seg)
		if err != nil {
			trace.SpanFromContext(ctx).AddEvent(tracing.EventSegmentDropped,
				trace.WithAttributes(attribute.Int(tracing.AttrDiffSegment, i)))
			log.Warn(log.CatDiff, "dropping unparsable segment", "index", i, "error", err)
			continue
		}
		all = append(all, files...)
	}
	if len(all) == 0 {
		return nil, ErrUnparsable
	}
	return Aggregate(all), nil
}

func (p *Pipeline) parseSegment(ctx context.Context, index int, text string) ([]FileChange, error) {
	_, span := p.tracer.Start(ctx, tracing.SpanDiffSegment,
		trace.WithAttributes(attribute.Int(tracing.AttrDiffSegment, index)))
	defer span.End()

	files, err := p.parser.Parse(text)
	tracing.RecordError(span, err)
	return files, err
}

func (p *Pipeline) summarize(ctx context.Context, fc FileChange) FileSummary {
	key := FileKey(fc)
	adds, dels := Count(fc)

	title := key
	if fc.Type == FileRenamed && fc.PathBefore != "" && fc.PathBefore != fc.PathAfter {
		title = fc.PathBefore + " => " + fc.PathAfter
	}

	lines := BuildLines(fc)
	if p.wordDiff {
		ApplyWordDiff(ctx, lines)
	}

	return FileSummary{
		Key:         key,
		Title:       title,
		DisplayPath: key,
		Type:        fc.Type,
		Additions:   adds,
		Deletions:   dels,
		Language:    LanguageForPath(key),
		Lines:       lines,
	}
}
