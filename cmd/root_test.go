package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/mlv/internal/config"
	"github.com/zjrosen/mlv/internal/highlight"
)

const samplePatch = `Subject: [PATCH] a: bump x

Bump x.

diff --git a/a.go b/a.go
--- a/a.go
+++ b/a.go
@@ -1,2 +1,2 @@
 package a
-var x = 1
+var x = 2
`

const sampleMbox = `From alice@example.org Mon Jan  5 10:00:00 2026
From: Alice <alice@example.org>
Subject: [PATCH] a: bump x
Date: Mon, 05 Jan 2026 10:00:00 +0000
Message-ID: <patch1@example.org>

Bump x.

diff --git a/a.go b/a.go
--- a/a.go
+++ b/a.go
@@ -1,2 +1,2 @@
 package a
-var x = 1
+var x = 2

From bob@example.org Mon Jan  5 11:00:00 2026
From: Bob <bob@example.org>
Subject: Re: [PATCH] a: bump x
Date: Mon, 05 Jan 2026 11:00:00 +0000
Message-ID: <reply1@example.org>
In-Reply-To: <patch1@example.org>

> Bump x.
Looks good.

`

// newTestCommand returns a command wired to in and a capture buffer, with
// the default config loaded.
func newTestCommand(t *testing.T, in string) (*cobra.Command, *bytes.Buffer) {
	t.Helper()
	t.Setenv("MLV_DEBUG", "")
	debugFlag = false
	cfg = config.Defaults()

	var out bytes.Buffer
	c := &cobra.Command{}
	c.SetIn(strings.NewReader(in))
	c.SetOut(&out)
	return c, &out
}

func TestReadInput_StdinAndFile(t *testing.T) {
	c, _ := newTestCommand(t, "from stdin")

	got, err := readInput(c, nil)
	require.NoError(t, err)
	require.Equal(t, "from stdin", got)

	path := filepath.Join(t.TempDir(), "body.txt")
	require.NoError(t, os.WriteFile(path, []byte("from file"), 0o644))
	got, err = readInput(c, []string{path})
	require.NoError(t, err)
	require.Equal(t, "from file", got)

	_, err = readInput(c, []string{filepath.Join(t.TempDir(), "missing")})
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestQuote_DumpsTree(t *testing.T) {
	c, out := newTestCommand(t, "hi\n> quoted\n")
	quoteRender = false

	require.NoError(t, runQuote(c, []string{"-"}))
	require.Contains(t, out.String(), "text\n")
	require.Contains(t, out.String(), `"quoted"`)
}

func TestQuote_RenderFolds(t *testing.T) {
	c, out := newTestCommand(t, "hi\n> one\n> two\n")
	quoteRender, quoteCollapse, quoteWidth = true, 1, 40
	t.Cleanup(func() { quoteRender, quoteCollapse, quoteWidth = false, 0, defaultWidth })

	require.NoError(t, runQuote(c, nil))
	plain := ansi.Strip(out.String())
	require.Contains(t, plain, "hi")
	require.Contains(t, plain, "[2 lines hidden]")
	require.NotContains(t, plain, "one")
}

func TestDiff_Terminal(t *testing.T) {
	c, out := newTestCommand(t, samplePatch)
	diffHTML = false

	require.NoError(t, runDiff(c, nil))
	plain := ansi.Strip(out.String())
	require.Contains(t, plain, "a.go  +1 -1")
	require.Contains(t, plain, "@@ -1,2 +1,2 @@")
	require.Contains(t, plain, "var x = 2")
}

func TestDiff_HTML(t *testing.T) {
	c, out := newTestCommand(t, samplePatch)
	diffHTML = true
	t.Cleanup(func() { diffHTML = false })

	require.NoError(t, runDiff(c, nil))
	page := out.String()
	require.True(t, strings.HasPrefix(page, "<!DOCTYPE html>"))
	require.Contains(t, page, "<h3>a.go")
	require.Contains(t, page, "<ins>2</ins>")
	require.Contains(t, page, "<del>1</del>")
	require.Contains(t, page, `class="add"`)
}

func TestDiff_NoDiffFails(t *testing.T) {
	c, _ := newTestCommand(t, "just prose\n")
	diffHTML = false

	require.Error(t, runDiff(c, nil))
}

func TestShow_ByIndexAndID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "list.mbox")
	require.NoError(t, os.WriteFile(path, []byte(sampleMbox), 0o644))

	c, out := newTestCommand(t, "")
	require.NoError(t, runShow(c, []string{path, "1"}))
	plain := ansi.Strip(out.String())
	require.Contains(t, plain, "PATCH [PATCH] a: bump x")
	require.Contains(t, plain, "From: Alice <alice@example.org>")
	require.Contains(t, plain, "var x = 2")

	out.Reset()
	require.NoError(t, runShow(c, []string{path, "<reply1@example.org>"}))
	plain = ansi.Strip(out.String())
	require.Contains(t, plain, "Looks good.")
	require.Contains(t, plain, "│ Bump x.")
}

func TestShow_HTMLFormatConfigStaysTerminal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "list.mbox")
	require.NoError(t, os.WriteFile(path, []byte(sampleMbox), 0o644))

	c, out := newTestCommand(t, "")
	cfg.Highlight.Format = string(highlight.FormatHTML)

	require.NoError(t, runShow(c, []string{path, "1"}))
	require.Contains(t, ansi.Strip(out.String()), "var x = 2")
	require.NotContains(t, out.String(), "<span")
}

func TestDiff_HTMLFormatFromConfig(t *testing.T) {
	c, out := newTestCommand(t, samplePatch)
	diffHTML = false
	cfg.Highlight.Format = string(highlight.FormatHTML)

	require.NoError(t, runDiff(c, nil))
	require.True(t, strings.HasPrefix(out.String(), "<!DOCTYPE html>"))
}

func TestNewServices_UsesCallerFormat(t *testing.T) {
	newTestCommand(t, "")
	cfg.Highlight.Format = string(highlight.FormatHTML)

	svc, err := newServices(highlight.FormatTerminal)
	require.NoError(t, err)
	defer svc.Close()
	require.Equal(t, highlight.FormatTerminal, svc.highlighter.Format())
}

func TestShow_UnknownMessage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "list.mbox")
	require.NoError(t, os.WriteFile(path, []byte(sampleMbox), 0o644))

	c, _ := newTestCommand(t, "")
	require.Error(t, runShow(c, []string{path, "42"}))
}

func TestThemes_MarksConfigured(t *testing.T) {
	c, out := newTestCommand(t, "")

	require.NoError(t, runThemes(c, nil))
	require.Contains(t, out.String(), "* monokai")
	require.Contains(t, out.String(), "* default")
	require.Contains(t, out.String(), "dracula")
}

func TestNewServices_RejectsInvalidConfig(t *testing.T) {
	newTestCommand(t, "")
	cfg.Diff.Parser = "bogus"

	_, err := newServices(highlight.FormatTerminal)
	require.Error(t, err)
}
