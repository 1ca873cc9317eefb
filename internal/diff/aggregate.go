package diff

// FileKey is the grouping key of a file-change record: the post-rename path
// for renames (pre-rename when the post path is missing), the path otherwise.
func FileKey(fc FileChange) string {
	if fc.Type == FileRenamed {
		if fc.PathAfter != "" {
			return fc.PathAfter
		}
		return fc.PathBefore
	}
	return fc.Path
}

// Aggregate merges records that share a FileKey. Chunks are concatenated in
// encounter order and every other field comes from the first record of the
// group. Groups keep the order in which their keys were first seen. The input
// is not modified.
func Aggregate(files []FileChange) []FileChange {
	index := make(map[string]int, len(files))
	out := make([]FileChange, 0, len(files))

	for _, fc := range files {
		key := FileKey(fc)
		if i, ok := index[key]; ok {
			out[i].Chunks = append(out[i].Chunks, fc.Chunks...)
			continue
		}

		merged := fc
		merged.Chunks = append([]Chunk(nil), fc.Chunks...)
		index[key] = len(out)
		out = append(out, merged)
	}
	return out
}

// Count returns the added and deleted line totals of fc. Binary chunks count
// for nothing.
func Count(fc FileChange) (additions, deletions int) {
	for _, c := range fc.Chunks {
		if c.Binary {
			continue
		}
		for _, ch := range c.Changes {
			switch ch.Type {
			case AddedLine:
				additions++
			case DeletedLine:
				deletions++
			}
		}
	}
	return additions, deletions
}
