// Package diff turns unified diff text (usually lifted out of a patch email)
// into per-file summaries made of display lines ready for highlighting.
package diff

import "errors"

// ErrUnparsable is the user-visible failure of a diff that could not be
// parsed as a whole.
var ErrUnparsable = errors.New("unable to parse diff")

// FileType classifies a file-change record.
type FileType int

const (
	FileChanged FileType = iota
	FileAdded
	FileDeleted
	FileRenamed
	FileBinary
)

func (t FileType) String() string {
	switch t {
	case FileChanged:
		return "changed"
	case FileAdded:
		return "added"
	case FileDeleted:
		return "deleted"
	case FileRenamed:
		return "renamed"
	case FileBinary:
		return "binary"
	default:
		return "unknown"
	}
}

// FileChange is one file's worth of a parsed diff. Path is the file's path;
// PathBefore and PathAfter are only set for renames and copies.
type FileChange struct {
	Type       FileType
	Path       string
	PathBefore string
	PathAfter  string
	Chunks     []Chunk
}

// Chunk is a hunk. A binary chunk carries no ranges or changes.
type Chunk struct {
	Binary    bool
	FromStart int
	FromCount int
	ToStart   int
	ToCount   int
	Context   string
	Changes   []Change
}

// ChangeType classifies one line of a hunk.
type ChangeType int

const (
	UnchangedLine ChangeType = iota
	AddedLine
	DeletedLine
	MessageLine
)

// Change is one hunk line. Before and After are 1-based line numbers in the
// old and new file; 0 means absent.
type Change struct {
	Type    ChangeType
	Before  int
	After   int
	Content string
}

// LineKind is the display classification of a rendered line.
type LineKind string

const (
	KindContext   LineKind = "context"
	KindAdded     LineKind = "added"
	KindDeleted   LineKind = "deleted"
	KindUnchanged LineKind = "unchanged"
	KindMessage   LineKind = "message"
	KindSeparator LineKind = "separator"
	KindBinary    LineKind = "binary"
)

// Structural reports whether lines of this kind are chrome rather than file
// content. Structural lines are never syntax highlighted.
func (k LineKind) Structural() bool {
	switch k {
	case KindContext, KindSeparator, KindBinary, KindMessage:
		return true
	default:
		return false
	}
}

// DisplayLine is one rendered row of a file's diff. Key is unique within the
// file and stable across re-renders of the same diff, so asynchronously
// produced markup can be attached back to its line.
type DisplayLine struct {
	Key      string
	Kind     LineKind
	Text     string
	Label    string
	Segments []WordSegment
}

// FileSummary is the render-ready view of one file.
type FileSummary struct {
	Key         string
	Title       string
	DisplayPath string
	Type        FileType
	Additions   int
	Deletions   int
	Language    string
	Lines       []DisplayLine
}

// LineRange selects lines of a message body, 1-based and inclusive.
type LineRange struct {
	StartLine int `json:"start_line"`
	EndLine   int `json:"end_line"`
}

// Result is the outcome of rendering one diff. When Err is set Files is
// empty; Raw still holds the extracted diff text for a plain fallback.
type Result struct {
	Files []FileSummary
	Raw   string
	Prose string
	Err   error
}

// Additions sums additions over all files.
func (r Result) Additions() int {
	n := 0
	for _, f := range r.Files {
		n += f.Additions
	}
	return n
}

// Deletions sums deletions over all files.
func (r Result) Deletions() int {
	n := 0
	for _, f := range r.Files {
		n += f.Deletions
	}
	return n
}
