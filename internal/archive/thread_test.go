package archive

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

var t0 = time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)

func msg(index int, id string, offset time.Duration, inReplyTo string, refs ...string) *Message {
	return &Message{Index: index, ID: id, Date: t0.Add(offset), InReplyTo: inReplyTo, References: refs}
}

func ids(rows []ThreadRow) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Message.ID
	}
	return out
}

func depths(rows []ThreadRow) []int {
	out := make([]int, len(rows))
	for i, r := range rows {
		out[i] = r.Depth
	}
	return out
}

func TestBuildThreads_ReplyTree(t *testing.T) {
	msgs := []*Message{
		msg(1, "cover", 0, ""),
		msg(2, "p2", 2*time.Minute, "cover", "cover"),
		msg(3, "p1", time.Minute, "cover", "cover"),
		msg(4, "r1", time.Hour, "p1", "cover", "p1"),
		msg(5, "other", 30*time.Minute, ""),
	}

	threads := BuildThreads(msgs)
	require.Len(t, threads, 2)
	require.Equal(t, 4, threads[0].Count())

	rows := Flatten(threads)
	require.Equal(t, []string{"cover", "p1", "r1", "p2", "other"}, ids(rows))
	require.Equal(t, []int{0, 1, 2, 1, 0}, depths(rows))
	require.True(t, rows[3].Last)
	require.False(t, rows[1].Last)
}

func TestBuildThreads_NearestKnownReference(t *testing.T) {
	msgs := []*Message{
		msg(1, "a", 0, ""),
		msg(2, "c", time.Minute, "missing", "a", "missing"),
	}

	rows := Flatten(BuildThreads(msgs))
	require.Equal(t, []string{"a", "c"}, ids(rows))
	require.Equal(t, []int{0, 1}, depths(rows))
}

func TestBuildThreads_InReplyToWinsOverReferences(t *testing.T) {
	msgs := []*Message{
		msg(1, "a", 0, ""),
		msg(2, "b", time.Minute, "a", "a"),
		msg(3, "c", 2*time.Minute, "a", "a", "b"),
	}

	rows := Flatten(BuildThreads(msgs))
	require.Equal(t, []string{"a", "b", "c"}, ids(rows))
	require.Equal(t, []int{0, 1, 1}, depths(rows))
}

func TestBuildThreads_OrphansBecomeRoots(t *testing.T) {
	msgs := []*Message{
		msg(1, "late", time.Hour, "gone"),
		msg(2, "early", 0, "also-gone"),
	}

	rows := Flatten(BuildThreads(msgs))
	require.Equal(t, []string{"early", "late"}, ids(rows))
	require.Equal(t, []int{0, 0}, depths(rows))
}

func TestBuildThreads_BreaksCycles(t *testing.T) {
	msgs := []*Message{
		msg(1, "a", 0, "b"),
		msg(2, "b", time.Minute, "a"),
	}

	rows := Flatten(BuildThreads(msgs))
	require.Equal(t, []string{"b", "a"}, ids(rows))
	require.Equal(t, []int{0, 1}, depths(rows))
}

func TestBuildThreads_SelfReference(t *testing.T) {
	rows := Flatten(BuildThreads([]*Message{msg(1, "a", 0, "a", "a")}))
	require.Equal(t, []string{"a"}, ids(rows))
}

func TestBuildThreads_SameDateKeepsArchiveOrder(t *testing.T) {
	msgs := []*Message{
		msg(2, "second", 0, ""),
		msg(1, "first", 0, ""),
	}

	require.Equal(t, []string{"first", "second"}, ids(Flatten(BuildThreads(msgs))))
}

func TestProperty_ThreadsCoverEveryMessageOnce(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(0, 30).Draw(rt, "n")
		msgs := make([]*Message, n)
		for i := range n {
			m := msg(i+1, string(rune('a'+i)), time.Duration(rapid.IntRange(0, 5).Draw(rt, "offset"))*time.Minute, "")
			if i > 0 && rapid.Bool().Draw(rt, "reply") {
				m.InReplyTo = string(rune('a' + rapid.IntRange(0, n-1).Draw(rt, "parent")))
			}
			msgs[i] = m
		}

		rows := Flatten(BuildThreads(msgs))
		require.Len(rt, rows, n)

		seen := map[string]bool{}
		for _, r := range rows {
			require.False(rt, seen[r.Message.ID], "message listed twice")
			seen[r.Message.ID] = true
		}
	})
}
