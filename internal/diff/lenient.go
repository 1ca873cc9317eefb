package diff

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	gitHeaderRegex   = regexp.MustCompile(`^diff --git a/(.+) b/(.+)$`)
	hunkHeaderRegex  = regexp.MustCompile(`^@@ -(\d+)(?:,(\d+))? \+(\d+)(?:,(\d+))? @@(.*)$`)
	renameFromRegex  = regexp.MustCompile(`^(?:rename|copy) from (.+)$`)
	renameToRegex    = regexp.MustCompile(`^(?:rename|copy) to (.+)$`)
	binaryFilesRegex = regexp.MustCompile(`^(?:Binary files .+ and .+ differ|GIT binary patch)$`)
	newFileModeRegex = regexp.MustCompile(`^new file mode \d+$`)
	delFileModeRegex = regexp.MustCompile(`^deleted file mode \d+$`)
)

const devNull = "/dev/null"

// LenientParser is a line scanner for diffs that mail clients have mangled
// (stripped context spaces, wrong hunk counts). Counts are never enforced:
// a hunk runs until the next header, and they only decide whether an
// unprefixed line is stripped context or trailing prose.
type LenientParser struct{}

type lenientFile struct {
	fc        FileChange
	oldPath   string
	newPath   string
	isNew     bool
	isDeleted bool
	isRenamed bool
	isBinary  bool
}

func (f *lenientFile) finish() FileChange {
	fc := f.fc
	switch {
	case f.isRenamed:
		fc.Type = FileRenamed
		fc.PathBefore, fc.PathAfter, fc.Path = f.oldPath, f.newPath, f.newPath
	case f.isNew:
		fc.Type = FileAdded
		fc.Path = f.newPath
	case f.isDeleted:
		fc.Type = FileDeleted
		fc.Path = f.oldPath
	case f.isBinary:
		fc.Type = FileBinary
		fc.Path = f.newPath
	default:
		fc.Type = FileChanged
		fc.Path = f.newPath
	}
	if fc.Path == "" || fc.Path == devNull {
		fc.Path = f.oldPath
	}
	if f.isBinary {
		fc.Chunks = append([]Chunk{{Binary: true}}, fc.Chunks...)
	}
	return fc
}

// Parse implements Parser.
func (LenientParser) Parse(text string) ([]FileChange, error) {
	var (
		files  []FileChange
		file   *lenientFile
		chunk  *Chunk
		before int
		after  int
	)

	closeChunk := func() {
		if file != nil && chunk != nil {
			file.fc.Chunks = append(file.fc.Chunks, *chunk)
		}
		chunk = nil
	}
	closeFile := func() {
		closeChunk()
		if file != nil {
			files = append(files, file.finish())
		}
		file = nil
	}

	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	for i := 0; i < len(lines); i++ {
		line := lines[i]

		if m := gitHeaderRegex.FindStringSubmatch(line); m != nil {
			closeFile()
			file = &lenientFile{oldPath: m[1], newPath: m[2]}
			continue
		}

		// A "--- "/"+++ " pair outside an unfinished hunk is a file header.
		// Headerless (non-git) diffs start here.
		hunkOpen := chunk != nil &&
			(before < chunk.FromStart+chunk.FromCount || after < chunk.ToStart+chunk.ToCount)
		if !hunkOpen && strings.HasPrefix(line, "--- ") && i+1 < len(lines) && strings.HasPrefix(lines[i+1], "+++ ") {
			if file == nil || chunk != nil || len(file.fc.Chunks) > 0 {
				closeFile()
				file = &lenientFile{}
			}
			closeChunk()
			if p := headerPath(line[4:], "a/"); p == devNull {
				file.isNew = true
			} else {
				file.oldPath = p
			}
			if p := headerPath(lines[i+1][4:], "b/"); p == devNull {
				file.isDeleted = true
			} else {
				file.newPath = p
			}
			i++
			continue
		}

		if file == nil {
			continue
		}

		if chunk == nil {
			if m := renameFromRegex.FindStringSubmatch(line); m != nil {
				file.oldPath, file.isRenamed = m[1], true
				continue
			}
			if m := renameToRegex.FindStringSubmatch(line); m != nil {
				file.newPath, file.isRenamed = m[1], true
				continue
			}
			if binaryFilesRegex.MatchString(line) {
				file.isBinary = true
				continue
			}
			if newFileModeRegex.MatchString(line) {
				file.isNew = true
				continue
			}
			if delFileModeRegex.MatchString(line) {
				file.isDeleted = true
				continue
			}
		}

		if m := hunkHeaderRegex.FindStringSubmatch(line); m != nil {
			closeChunk()
			c, err := chunkFromHeader(m)
			if err != nil {
				return nil, fmt.Errorf("%w: %s", err, line)
			}
			chunk = &c
			before, after = c.FromStart, c.ToStart
			continue
		}

		if chunk == nil {
			continue
		}

		if line == "" {
			chunk.Changes = append(chunk.Changes, Change{Type: UnchangedLine, Before: before, After: after})
			before++
			after++
			continue
		}

		content := line[1:]
		switch line[0] {
		case ' ':
			chunk.Changes = append(chunk.Changes, Change{Type: UnchangedLine, Before: before, After: after, Content: content})
			before++
			after++
		case '-':
			chunk.Changes = append(chunk.Changes, Change{Type: DeletedLine, Before: before, Content: content})
			before++
		case '+':
			chunk.Changes = append(chunk.Changes, Change{Type: AddedLine, After: after, Content: content})
			after++
		case '\\':
			chunk.Changes = append(chunk.Changes, Change{Type: MessageLine, Content: line})
		default:
			if before < chunk.FromStart+chunk.FromCount && after < chunk.ToStart+chunk.ToCount {
				// Context line whose leading space was stripped.
				chunk.Changes = append(chunk.Changes, Change{Type: UnchangedLine, Before: before, After: after, Content: line})
				before++
				after++
				continue
			}
			// Trailing prose after the last hunk.
			closeChunk()
		}
	}
	closeFile()

	if len(files) == 0 && strings.TrimSpace(text) != "" {
		return nil, fmt.Errorf("no file headers found")
	}
	return files, nil
}

// headerPath extracts the path from a ---/+++ header value, dropping the
// git prefix and any tab-separated timestamp.
func headerPath(value, prefix string) string {
	value, _, _ = strings.Cut(value, "\t")
	value = strings.TrimSpace(value)
	if value == devNull {
		return value
	}
	return strings.TrimPrefix(value, prefix)
}

func chunkFromHeader(m []string) (Chunk, error) {
	fromStart, err := strconv.Atoi(m[1])
	if err != nil {
		return Chunk{}, fmt.Errorf("invalid old start line in hunk header")
	}
	fromCount := 1
	if m[2] != "" {
		if fromCount, err = strconv.Atoi(m[2]); err != nil {
			return Chunk{}, fmt.Errorf("invalid old count in hunk header")
		}
	}
	toStart, err := strconv.Atoi(m[3])
	if err != nil {
		return Chunk{}, fmt.Errorf("invalid new start line in hunk header")
	}
	toCount := 1
	if m[4] != "" {
		if toCount, err = strconv.Atoi(m[4]); err != nil {
			return Chunk{}, fmt.Errorf("invalid new count in hunk header")
		}
	}
	return Chunk{
		FromStart: fromStart,
		FromCount: fromCount,
		ToStart:   toStart,
		ToCount:   toCount,
		Context:   strings.TrimSpace(m[5]),
	}, nil
}
