package archive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/emersion/go-mbox"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/mlv/internal/log"
	"github.com/zjrosen/mlv/internal/tracing"
)

// Loader reads mbox archives.
type Loader struct {
	tracer trace.Tracer
}

// Option configures a Loader.
type Option func(*Loader)

// WithTracer records an archive.load span with one child span per message.
func WithTracer(t trace.Tracer) Option {
	return func(l *Loader) { l.tracer = t }
}

// NewLoader returns a loader with a no-op tracer.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{tracer: tracing.Noop()}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load opens and reads the mbox file at path.
func (l *Loader) Load(ctx context.Context, path string) (*Archive, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening archive: %w", err)
	}
	defer func() { _ = f.Close() }()

	return l.Read(ctx, path, f)
}

// Read parses an mbox stream. Messages that fail to parse are skipped and
// counted; a broken mbox framing aborts the load. path only labels the
// result.
func (l *Loader) Read(ctx context.Context, path string, r io.Reader) (*Archive, error) {
	ctx, span := l.tracer.Start(ctx, tracing.SpanArchiveLoad,
		trace.WithAttributes(attribute.String(tracing.AttrArchivePath, path)))
	defer span.End()

	reader := mbox.NewReader(r)
	var (
		msgs    []*Message
		skipped int
		index   int
	)

	for {
		if err := ctx.Err(); err != nil {
			tracing.RecordError(span, err)
			return nil, err
		}

		mr, err := reader.NextMessage()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			err = fmt.Errorf("reading mbox: %w", err)
			tracing.RecordError(span, err)
			log.ErrorErr(log.CatArchive, "mbox read failed", err, "path", path, "parsed", len(msgs))
			return nil, err
		}
		index++

		msg, err := l.parse(ctx, index, mr)
		if err != nil {
			skipped++
			span.AddEvent(tracing.EventMessageSkipped, trace.WithAttributes(
				attribute.Int("archive.index", index),
				attribute.String(tracing.AttrErrorMessage, err.Error()),
			))
			log.Warn(log.CatArchive, "skipping message", "path", path, "index", index, "error", err)
			continue
		}
		msgs = append(msgs, msg)
	}

	a := New(path, msgs)
	a.Skipped = skipped

	span.SetAttributes(
		attribute.Int(tracing.AttrArchiveMessages, len(msgs)),
		attribute.Int(tracing.AttrArchiveThreads, len(a.Threads)),
		attribute.Int(tracing.AttrArchiveSkipped, skipped),
	)
	log.Info(log.CatArchive, "archive loaded", "path", path,
		"messages", len(msgs), "threads", len(a.Threads), "skipped", skipped)

	return a, nil
}

func (l *Loader) parse(ctx context.Context, index int, r io.Reader) (*Message, error) {
	_, span := l.tracer.Start(ctx, tracing.SpanArchiveParse,
		trace.WithAttributes(attribute.Int("archive.index", index)))
	defer span.End()

	msg, err := ParseMessage(r)
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}
	msg.Index = index
	span.SetAttributes(attribute.Bool("archive.patch", msg.Patch))
	return msg, nil
}
