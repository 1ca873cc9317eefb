package archive

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/emersion/go-message"
	"github.com/emersion/go-message/mail"
	"github.com/google/uuid"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"

	"github.com/zjrosen/mlv/internal/log"
)

// SyntheticIDPrefix marks ids generated for messages without a Message-ID.
const SyntheticIDPrefix = "mlv-"

const maxPartBytes = 8 << 20

var (
	patchSubjectRegex = regexp.MustCompile(`(?i)\[[^\]]*\bPATCH\b[^\]]*\]`)
	patchBodyRegex    = regexp.MustCompile(`(?m)^(diff --git |@@ -\d+(,\d+)? \+\d+(,\d+)? @@)`)
)

func init() {
	message.CharsetReader = charsetReader
}

// charsetReader decodes any IANA-registered charset to UTF-8.
func charsetReader(charset string, input io.Reader) (io.Reader, error) {
	enc, err := ianaindex.IANA.Encoding(charset)
	if err != nil {
		return nil, fmt.Errorf("unknown charset %q: %w", charset, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("unsupported charset %q", charset)
	}
	return transform.NewReader(input, enc.NewDecoder()), nil
}

// ParseMessage decodes one RFC 5322 message. Unknown charsets degrade to
// the undecoded bytes rather than failing.
func ParseMessage(r io.Reader) (*Message, error) {
	mr, err := mail.CreateReader(r)
	if err != nil && !message.IsUnknownCharset(err) {
		return nil, fmt.Errorf("reading message: %w", err)
	}
	defer func() { _ = mr.Close() }()

	msg := &Message{}
	parseHeader(mr.Header, msg)

	body, isHTML, err := readBody(mr)
	if err != nil {
		return nil, err
	}
	msg.Body = body
	msg.HTML = isHTML
	msg.Patch = IsPatch(msg.Subject, msg.Body)
	return msg, nil
}

func parseHeader(h mail.Header, msg *Message) {
	if subject, err := h.Subject(); err == nil {
		msg.Subject = strings.TrimSpace(subject)
	} else {
		msg.Subject = strings.TrimSpace(h.Get("Subject"))
	}

	if from, err := h.AddressList("From"); err == nil && len(from) > 0 {
		msg.From = from[0].Name
		msg.FromAddress = from[0].Address
	} else {
		msg.From = strings.TrimSpace(h.Get("From"))
	}

	if date, err := h.Date(); err == nil {
		msg.Date = date
	}

	if id, err := h.MessageID(); err == nil && id != "" {
		msg.ID = id
	} else {
		msg.ID = SyntheticIDPrefix + uuid.NewString()
	}

	if ids, err := h.MsgIDList("In-Reply-To"); err == nil && len(ids) > 0 {
		msg.InReplyTo = ids[0]
	}
	if ids, err := h.MsgIDList("References"); err == nil {
		msg.References = ids
	}
}

// readBody walks every part and returns the text/plain content, or the HTML
// content as text when no plain part exists. Inline and attached patches
// (text/x-patch, text/x-diff) are appended to the plain text.
func readBody(mr *mail.Reader) (string, bool, error) {
	var plain, html []string

	for {
		p, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			if p == nil || !message.IsUnknownCharset(err) {
				return "", false, fmt.Errorf("reading part: %w", err)
			}
			log.Warn(log.CatArchive, "part has unknown charset, keeping raw bytes", "error", err)
		}

		var contentType string
		attachment := false
		switch h := p.Header.(type) {
		case *mail.InlineHeader:
			contentType, _, err = h.ContentType()
		case *mail.AttachmentHeader:
			contentType, _, err = h.ContentType()
			attachment = true
		}
		if err != nil || contentType == "" {
			contentType = "text/plain"
		}

		keep := false
		switch contentType {
		case "text/plain":
			keep = !attachment
		case "text/html":
			keep = !attachment
		case "text/x-patch", "text/x-diff", "text/x-diff-patch":
			keep = true
		}
		if !keep {
			continue
		}

		data, err := io.ReadAll(io.LimitReader(p.Body, maxPartBytes))
		if err != nil {
			return "", false, fmt.Errorf("reading %s part: %w", contentType, err)
		}

		if contentType == "text/html" {
			html = append(html, string(data))
		} else {
			plain = append(plain, string(data))
		}
	}

	if len(plain) > 0 {
		return strings.Join(plain, "\n"), false, nil
	}
	if len(html) > 0 {
		text, err := htmlToText(strings.Join(html, "\n"))
		if err != nil {
			return "", false, err
		}
		return text, true, nil
	}
	return "", false, nil
}

// IsPatch reports whether a message carries a patch: a [PATCH ...] subject
// tag on a non-reply, or a diff in the body.
func IsPatch(subject, body string) bool {
	if patchSubjectRegex.MatchString(subject) && !isReply(subject) {
		return true
	}
	return patchBodyRegex.MatchString(body)
}

func isReply(subject string) bool {
	s := strings.ToLower(strings.TrimSpace(subject))
	return strings.HasPrefix(s, "re:") || strings.HasPrefix(s, "aw:")
}
