package archive

import "strings"

func lines(ls ...string) string {
	return strings.Join(ls, "\n") + "\n"
}

var patchMessage = lines(
	"From alice@example.org Mon Jan  5 10:00:00 2026",
	"From: Alice Example <alice@example.org>",
	"Subject: [PATCH 1/2] mm: fix leak",
	"Date: Mon, 05 Jan 2026 10:00:00 +0000",
	"Message-ID: <patch1@example.org>",
	"",
	"Fix the leak in the allocator.",
	"",
	"diff --git a/mm/x.c b/mm/x.c",
	"--- a/mm/x.c",
	"+++ b/mm/x.c",
	"@@ -1,2 +1,2 @@",
	" int x;",
	"-int y;",
	"+int z;",
	"-- ",
	"2.43.0",
	"",
)

var replyMessage = lines(
	"From bob@example.org Mon Jan  5 11:00:00 2026",
	"From: Bob <bob@example.org>",
	"Subject: Re: [PATCH 1/2] mm: fix leak",
	"Date: Mon, 05 Jan 2026 11:00:00 +0000",
	"Message-ID: <reply1@example.org>",
	"In-Reply-To: <patch1@example.org>",
	"References: <patch1@example.org>",
	"",
	"> Fix the leak in the allocator.",
	"",
	"Looks good.",
	"",
)

var htmlMessage = lines(
	"From carol@example.org Mon Jan  5 09:00:00 2026",
	"From: =?ISO-8859-1?Q?Caf=E9_Carol?= <carol@example.org>",
	"Subject: Question about mm",
	"Date: Mon, 05 Jan 2026 09:00:00 +0000",
	"MIME-Version: 1.0",
	`Content-Type: multipart/alternative; boundary="b1"`,
	"",
	"--b1",
	"Content-Type: text/html; charset=iso-8859-1",
	"Content-Transfer-Encoding: quoted-printable",
	"",
	"<p>Caf=E9 question</p><blockquote><p>earlier</p></blockquote>",
	"--b1--",
	"",
)

var brokenMessage = lines(
	"From mallory@example.org Mon Jan  5 12:00:00 2026",
	"this header line has no colon",
	"",
	"body",
	"",
)

var archiveText = htmlMessage + patchMessage + replyMessage
