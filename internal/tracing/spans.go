package tracing

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Span attribute keys.
const (
	AttrDiffBytes       = "diff.bytes"
	AttrDiffSegments    = "diff.segments"
	AttrDiffSegment     = "diff.segment.index"
	AttrDiffFiles       = "diff.files"
	AttrDiffRanges      = "diff.ranges"
	AttrArchivePath     = "archive.path"
	AttrArchiveMessages = "archive.messages"
	AttrArchiveThreads  = "archive.threads"
	AttrArchiveSkipped  = "archive.skipped"
	AttrErrorMessage    = "error.message"
)

// Span names.
const (
	SpanDiffRender   = "diff.render"
	SpanDiffSegment  = "diff.parse_segment"
	SpanArchiveLoad  = "archive.load"
	SpanArchiveParse = "archive.parse_message"
)

// Event names.
const (
	EventSegmentDropped = "diff.segment_dropped"
	EventMessageSkipped = "archive.message_skipped"
)

// RecordError marks span as failed and attaches err. A nil err is ignored.
func RecordError(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	span.SetAttributes(attribute.String(AttrErrorMessage, err.Error()))
}
