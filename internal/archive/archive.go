// Package archive loads mailing-list mbox archives into messages and
// threads.
package archive

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrNotFound is returned by Lookup when no message matches.
var ErrNotFound = errors.New("message not found")

// Message is one decoded email.
type Message struct {
	// Index is the 1-based position in the mbox file.
	Index int
	// ID is the Message-ID without angle brackets. Messages that carry none
	// get a generated id with SyntheticIDPrefix.
	ID          string
	Subject     string
	From        string
	FromAddress string
	Date        time.Time
	InReplyTo   string
	References  []string
	// Body is the text/plain body, or the HTML body converted to text when
	// no plain part exists.
	Body string
	// HTML is set when Body was converted from HTML.
	HTML bool
	// Patch is set when the subject is tagged [PATCH] or the body carries a diff.
	Patch bool
}

// Author returns the display name, falling back to the address.
func (m *Message) Author() string {
	if m.From != "" {
		return m.From
	}
	return m.FromAddress
}

// Archive is a loaded mailbox.
type Archive struct {
	Path     string
	Messages []*Message
	Threads  []*ThreadNode
	// Skipped counts mbox entries that could not be parsed.
	Skipped int

	byID map[string]*Message
}

// New indexes msgs and builds their threads.
func New(path string, msgs []*Message) *Archive {
	a := &Archive{
		Path:     path,
		Messages: msgs,
		byID:     make(map[string]*Message, len(msgs)),
	}
	for _, m := range msgs {
		// First occurrence wins for duplicate ids.
		if _, ok := a.byID[m.ID]; !ok {
			a.byID[m.ID] = m
		}
	}
	a.Threads = BuildThreads(msgs)
	return a
}

// Lookup finds a message by 1-based index or by Message-ID (with or
// without angle brackets).
func (a *Archive) Lookup(ref string) (*Message, error) {
	ref = strings.TrimSpace(ref)
	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(a.Messages) {
			return nil, fmt.Errorf("%w: index %d (archive has %d messages)", ErrNotFound, n, len(a.Messages))
		}
		return a.Messages[n-1], nil
	}

	id := strings.Trim(ref, "<>")
	if m, ok := a.byID[id]; ok {
		return m, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrNotFound, ref)
}

// Patches returns the messages flagged as patches, in archive order.
func (a *Archive) Patches() []*Message {
	var out []*Message
	for _, m := range a.Messages {
		if m.Patch {
			out = append(out, m)
		}
	}
	return out
}
