package archive

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var blankRunRegex = regexp.MustCompile(`\n{3,}`)

// htmlToText flattens an HTML body to plain text. Blockquotes become "> "
// quoted lines so the quote tree can still be built from the result.
func htmlToText(body string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("parsing html body: %w", err)
	}

	doc.Find("style, script, head").Remove()

	doc.Find("br").Each(func(_ int, s *goquery.Selection) {
		s.ReplaceWithHtml("\n")
	})

	doc.Find("p, div, pre, li, h1, h2, h3, h4, tr").Each(func(_ int, s *goquery.Selection) {
		s.AfterHtml("\n")
	})

	// Innermost first so nested quotes collect one marker per level.
	quotes := doc.Find("blockquote")
	for i := quotes.Length() - 1; i >= 0; i-- {
		s := quotes.Eq(i)
		s.ReplaceWithHtml("\n" + escapeText(quoteLines(s.Text())) + "\n")
	}

	text := doc.Text()
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " \t\u00a0")
	}
	text = strings.Join(lines, "\n")
	text = blankRunRegex.ReplaceAllString(text, "\n\n")
	return strings.Trim(text, "\n"), nil
}

func quoteLines(s string) string {
	lines := strings.Split(strings.Trim(s, "\n"), "\n")
	for i, l := range lines {
		if strings.HasPrefix(l, ">") {
			lines[i] = ">" + l
		} else {
			lines[i] = "> " + l
		}
	}
	return strings.Join(lines, "\n")
}

func escapeText(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	return r.Replace(s)
}
