package archive

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/zjrosen/mlv/internal/quote"
	"github.com/zjrosen/mlv/internal/tracing"
)

func TestLoad_ParsesMessages(t *testing.T) {
	path := filepath.Join(t.TempDir(), "list.mbox")
	require.NoError(t, os.WriteFile(path, []byte(archiveText), 0o600))

	a, err := NewLoader().Load(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, path, a.Path)
	require.Len(t, a.Messages, 3)
	require.Zero(t, a.Skipped)

	html := a.Messages[0]
	require.Equal(t, 1, html.Index)
	require.Equal(t, "Café Carol", html.From)
	require.Equal(t, "carol@example.org", html.FromAddress)
	require.True(t, strings.HasPrefix(html.ID, SyntheticIDPrefix), "missing Message-ID gets a generated id")
	require.True(t, html.HTML)
	require.Contains(t, html.Body, "Café question")
	require.Contains(t, html.Body, "> earlier")
	require.NotContains(t, html.Body, "<p>")
	require.False(t, html.Patch)

	patch := a.Messages[1]
	require.Equal(t, "patch1@example.org", patch.ID)
	require.Equal(t, "[PATCH 1/2] mm: fix leak", patch.Subject)
	require.Equal(t, "Alice Example", patch.Author())
	require.Equal(t, time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC), patch.Date.UTC())
	require.True(t, patch.Patch)
	require.Contains(t, patch.Body, "diff --git a/mm/x.c b/mm/x.c")

	reply := a.Messages[2]
	require.Equal(t, "patch1@example.org", reply.InReplyTo)
	require.Equal(t, []string{"patch1@example.org"}, reply.References)
	require.False(t, reply.Patch, "a Re: without a diff is not a patch")

	root := quote.Parse(reply.Body)
	require.Equal(t, 1, quote.MaxDepth(root))
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := NewLoader().Load(context.Background(), filepath.Join(t.TempDir(), "nope.mbox"))
	require.Error(t, err)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestRead_SkipsUnparsableMessages(t *testing.T) {
	a, err := NewLoader().Read(context.Background(), "mem", strings.NewReader(patchMessage+brokenMessage+replyMessage))
	require.NoError(t, err)
	require.Len(t, a.Messages, 2)
	require.Equal(t, 1, a.Skipped)
	require.Equal(t, 3, a.Messages[1].Index, "indexes follow mbox positions")
}

func TestRead_Empty(t *testing.T) {
	a, err := NewLoader().Read(context.Background(), "empty", strings.NewReader(""))
	require.NoError(t, err)
	require.Empty(t, a.Messages)
	require.Empty(t, a.Threads)
}

func TestRead_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewLoader().Read(ctx, "mem", strings.NewReader(archiveText))
	require.ErrorIs(t, err, context.Canceled)
}

func TestRead_RecordsSpans(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	defer func() { _ = tp.Shutdown(context.Background()) }()

	loader := NewLoader(WithTracer(tp.Tracer("test")))
	_, err := loader.Read(context.Background(), "mem", strings.NewReader(patchMessage+brokenMessage))
	require.NoError(t, err)

	var load sdktrace.ReadOnlySpan
	parses := 0
	for _, s := range recorder.Ended() {
		switch s.Name() {
		case tracing.SpanArchiveLoad:
			load = s
		case tracing.SpanArchiveParse:
			parses++
		}
	}
	require.NotNil(t, load)
	require.Equal(t, 2, parses)

	attrs := map[string]int64{}
	for _, kv := range load.Attributes() {
		if kv.Value.Type() == attribute.INT64 {
			attrs[string(kv.Key)] = kv.Value.AsInt64()
		}
	}
	require.Equal(t, int64(1), attrs[tracing.AttrArchiveMessages])
	require.Equal(t, int64(1), attrs[tracing.AttrArchiveSkipped])

	require.Len(t, load.Events(), 1)
	require.Equal(t, tracing.EventMessageSkipped, load.Events()[0].Name)
}

func TestArchive_Lookup(t *testing.T) {
	a, err := NewLoader().Read(context.Background(), "mem", strings.NewReader(archiveText))
	require.NoError(t, err)

	m, err := a.Lookup("2")
	require.NoError(t, err)
	require.Equal(t, "patch1@example.org", m.ID)

	m, err = a.Lookup("<reply1@example.org>")
	require.NoError(t, err)
	require.Equal(t, 3, m.Index)

	m, err = a.Lookup("reply1@example.org")
	require.NoError(t, err)
	require.Equal(t, 3, m.Index)

	_, err = a.Lookup("0")
	require.True(t, errors.Is(err, ErrNotFound))
	_, err = a.Lookup("4")
	require.ErrorIs(t, err, ErrNotFound)
	_, err = a.Lookup("nobody@example.org")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestArchive_Patches(t *testing.T) {
	a, err := NewLoader().Read(context.Background(), "mem", strings.NewReader(archiveText))
	require.NoError(t, err)

	patches := a.Patches()
	require.Len(t, patches, 1)
	require.Equal(t, "patch1@example.org", patches[0].ID)
}

func TestIsPatch(t *testing.T) {
	tests := []struct {
		subject string
		body    string
		want    bool
	}{
		{"[PATCH] fix", "", true},
		{"[PATCH v3 02/10] net: x", "", true},
		{"[RFC PATCH] idea", "", true},
		{"[patch] lower", "", true},
		{"Re: [PATCH] fix", "> quoted\n", false},
		{"Re: [PATCH] fix", "diff --git a/x b/x\n", true},
		{"Patch review notes", "", false},
		{"plain", "diff --git a/x b/x\n", true},
		{"plain", "text\n@@ -1,3 +1,4 @@ func\n", true},
		{"plain", "--- Original Message ---\n", false},
	}
	for _, tt := range tests {
		t.Run(tt.subject, func(t *testing.T) {
			require.Equal(t, tt.want, IsPatch(tt.subject, tt.body))
		})
	}
}
