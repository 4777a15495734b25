package subs_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/subtag/pkg/ass"
	"github.com/yaklabco/subtag/pkg/fsutil"
	"github.com/yaklabco/subtag/pkg/scan"
	"github.com/yaklabco/subtag/pkg/subs"
	"github.com/yaklabco/subtag/pkg/tagedit"
)

const script = "[Script Info]\r\n" +
	"Title: test\r\n" +
	"ScriptType: v4.00+\r\n" +
	"\r\n" +
	"[V4+ Styles]\r\n" +
	"Format: Name, Fontname, Fontsize, PrimaryColour, SecondaryColour, OutlineColour, BackColour, Bold\r\n" +
	"Style: Default,Arial,20,&H00FFFFFF,&H000000FF,&H00000000,&H80000000,0\r\n" +
	"Style: Sign,Arial,30,&H0000FFFF,&H000000FF,&H00000000,&H00000000,-1\r\n" +
	"\r\n" +
	"[Events]\r\n" +
	"Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text\r\n" +
	"Dialogue: 0,0:00:01.00,0:00:02.00,Default,,0,0,0,,Hello {\\c&H0000FF&}world\r\n" +
	"Comment: 1,0:00:02.00,0:00:03.00,Sign,Bob,0,0,0,,a, b, c\r\n" +
	"Dialogue: 0,0:00:03.00,0:00:04.00,Default,,0,0,0,,plain\r\n"

func parse(t *testing.T) *subs.File {
	t.Helper()

	f, err := subs.Parse([]byte(script))
	require.NoError(t, err)
	return f
}

func TestParseEvents(t *testing.T) {
	t.Parallel()

	f := parse(t)
	events := f.Events()
	require.Len(t, events, 3)

	assert.Equal(t, `Hello {\c&H0000FF&}world`, events[0].Text())
	assert.Equal(t, "Default", events[0].Style())
	assert.Equal(t, "Dialogue", events[0].Kind)
	assert.Equal(t, 1, events[0].Number)
	assert.Equal(t, 11, events[0].Row)

	assert.Equal(t, "a, b, c", events[1].Text())
	assert.Equal(t, "Comment", events[1].Kind)
	assert.Equal(t, "Bob", events[1].Field(subs.FieldActor))
	assert.Equal(t, "0:00:02.00", events[1].Field("Start"))
	assert.Equal(t, 1, events[1].Layer())

	assert.Equal(t, "plain", events[2].Text())
	assert.False(t, f.Modified())
}

func TestParseDefaultFormat(t *testing.T) {
	t.Parallel()

	f, err := subs.Parse([]byte("[Events]\nDialogue: 0,0:00:00.00,0:00:01.00,Default,,0,0,0,,x,y\n"))
	require.NoError(t, err)
	require.Len(t, f.Events(), 1)
	assert.Equal(t, "x,y", f.Events()[0].Text())
}

func TestParseByteOrderMark(t *testing.T) {
	t.Parallel()

	content := "\xEF\xBB\xBF[Events]\nDialogue: 0,0:00:00.00,0:00:01.00,Default,,0,0,0,,hi\n"
	f, err := subs.Parse([]byte(content))
	require.NoError(t, err)
	require.Len(t, f.Events(), 1)

	f.Events()[0].SetText("bye")
	out, err := f.Bytes()
	require.NoError(t, err)
	assert.Equal(t, strings.Replace(content, ",hi\n", ",bye\n", 1), string(out))
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "too few fields",
			content: "[Events]\nFormat: Layer, Start, Text\nDialogue: 0\n",
		},
		{
			name:    "text not last",
			content: "[Events]\nFormat: Layer, Text, Start\nDialogue: 0,a,b\n",
		},
		{
			name:    "style before format",
			content: "[V4+ Styles]\nStyle: Default,Arial\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := subs.Parse([]byte(tt.content))
			var perr *subs.ParseError
			require.ErrorAs(t, err, &perr)
		})
	}
}

func TestBytesRoundTrip(t *testing.T) {
	t.Parallel()

	f := parse(t)
	out, err := f.Bytes()
	require.NoError(t, err)
	assert.Equal(t, script, string(out))
}

func TestBytesAppliesEdits(t *testing.T) {
	t.Parallel()

	f := parse(t)
	events := f.Events()
	events[0].SetText(`{\b1}Hello`)
	events[2].SetStyle("Sign")
	assert.True(t, f.Modified())
	assert.True(t, events[0].Modified())
	assert.False(t, events[1].Modified())

	out, err := f.Bytes()
	require.NoError(t, err)

	want := strings.NewReplacer(
		`,,Hello {\c&H0000FF&}world`, `,,{\b1}Hello`,
		"0:00:04.00,Default,", "0:00:04.00,Sign,",
	).Replace(script)
	assert.Equal(t, want, string(out))
}

func TestEvent(t *testing.T) {
	t.Parallel()

	f := parse(t)

	l, err := f.Event(3)
	require.NoError(t, err)
	assert.Equal(t, "plain", l.Text())

	for _, n := range []int{0, 4, -1} {
		_, err := f.Event(n)
		require.ErrorIs(t, err, subs.ErrNoSuchLine)
	}
}

func TestStyles(t *testing.T) {
	t.Parallel()

	f := parse(t)
	assert.Equal(t, []string{"Default", "Sign"}, f.StyleNames())

	s, ok := f.Style("Sign")
	require.True(t, ok)
	assert.Equal(t, "-1", s.Field("Bold"))
	assert.Equal(t, ass.Color{R: 0xFF, G: 0xFF}, s.Color(subs.StylePrimary, ass.Color{}))

	s, ok = f.Style("Missing")
	require.True(t, ok)
	assert.Equal(t, "Default", s.Name)
	assert.Equal(t, ass.Color{A: 0x80}, s.Color(subs.StyleBack, ass.Color{}))

	def := ass.Color{R: 1, G: 2, B: 3}
	assert.Equal(t, def, s.Color("Fontname", def))
}

func TestReadWrite(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "show.ass")
	require.NoError(t, os.WriteFile(path, []byte(script), 0o600))

	f, err := subs.Read(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, path, f.Path)
	require.NotNil(t, f.Snapshot)

	f.Events()[2].SetText("changed")
	require.NoError(t, f.Write(ctx, path, true))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(got), ",,changed\r\n")

	backup, err := os.ReadFile(fsutil.BackupPath(path))
	require.NoError(t, err)
	assert.Equal(t, script, string(backup))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestReadRejectsBinary(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "frame.ass")
	require.NoError(t, os.WriteFile(path, []byte{0x89, 'P', 'N', 'G', 0, 0, 0, 0x0D}, 0o644))

	_, err := subs.Read(context.Background(), path)
	require.ErrorIs(t, err, subs.ErrBinary)
}

func TestHistoryCommit(t *testing.T) {
	t.Parallel()

	f := parse(t)
	h := subs.NewHistory(f.Lines(), 0)
	events := f.Events()

	assert.Equal(t, subs.NoCommit, h.Commit("nothing", subs.CommitDialogueText, subs.NoCommit, nil))

	events[0].SetText("one")
	events[2].SetText("three")
	id := h.Commit("set color", subs.CommitDialogueText, subs.NoCommit, nil)
	require.NotEqual(t, subs.NoCommit, id)

	steps := h.Steps()
	require.Len(t, steps, 1)
	assert.Equal(t, "set color", steps[0].Description)
	require.Len(t, steps[0].Changes, 2)
	assert.Equal(t, `Hello {\c&H0000FF&}world`, steps[0].Changes[0].Before())
	assert.Equal(t, "one", steps[0].Changes[0].After())

	step, err := h.Undo()
	require.NoError(t, err)
	assert.Equal(t, id, step.ID)
	assert.Equal(t, `Hello {\c&H0000FF&}world`, events[0].Text())
	assert.Equal(t, "plain", events[2].Text())
	assert.False(t, f.Modified())

	_, err = h.Redo()
	require.NoError(t, err)
	assert.Equal(t, "one", events[0].Text())
	assert.Equal(t, "three", events[2].Text())

	_, err = h.Redo()
	require.ErrorIs(t, err, subs.ErrNothingToRedo)
}

func TestHistoryAmend(t *testing.T) {
	t.Parallel()

	f := parse(t)
	h := subs.NewHistory(f.Lines(), 0)
	l := f.Events()[0]

	l.SetText("a")
	id := h.Commit("pick", subs.CommitDialogueText, subs.NoCommit, l)
	l.SetText("b")
	assert.Equal(t, id, h.Commit("pick", subs.CommitDialogueText, id, l))
	l.SetText("c")
	assert.Equal(t, id, h.Commit("pick", subs.CommitDialogueText, id, l))

	steps := h.Steps()
	require.Len(t, steps, 1)
	assert.Equal(t, l, steps[0].Single)
	require.Len(t, steps[0].Changes, 1)
	assert.Equal(t, `Hello {\c&H0000FF&}world`, steps[0].Changes[0].Before())
	assert.Equal(t, "c", steps[0].Changes[0].After())

	_, err := h.Undo()
	require.NoError(t, err)
	assert.Equal(t, `Hello {\c&H0000FF&}world`, l.Text())

	_, err = h.Undo()
	require.ErrorIs(t, err, subs.ErrNothingToUndo)
}

func TestHistoryStaleAmendStartsNewStep(t *testing.T) {
	t.Parallel()

	f := parse(t)
	h := subs.NewHistory(f.Lines(), 0)
	events := f.Events()

	events[0].SetText("a")
	first := h.Commit("one", subs.CommitDialogueText, subs.NoCommit, nil)
	events[1].SetText("b")
	second := h.Commit("two", subs.CommitDialogueText, subs.NoCommit, nil)
	events[2].SetText("c")
	third := h.Commit("three", subs.CommitDialogueText, first, nil)

	assert.NotEqual(t, first, third)
	assert.NotEqual(t, second, third)
	assert.Len(t, h.Steps(), 3)
}

func TestHistoryBound(t *testing.T) {
	t.Parallel()

	f := parse(t)
	h := subs.NewHistory(f.Lines(), 2)
	l := f.Events()[0]

	for _, s := range []string{"a", "b", "c"} {
		l.SetText(s)
		h.Commit(s, subs.CommitDialogueText, subs.NoCommit, nil)
	}

	steps := h.Steps()
	require.Len(t, steps, 2)
	assert.Equal(t, "b", steps[0].Description)
	assert.True(t, h.CanUndo())
	assert.False(t, h.CanRedo())
}

func TestSelectEvents(t *testing.T) {
	t.Parallel()

	f := parse(t)
	sel, err := subs.SelectEvents(f, 1, []int{1, 3}, 7, 7)
	require.NoError(t, err)

	first, _ := f.Event(1)
	third, _ := f.Event(3)
	assert.Equal(t, tagedit.Line(first), sel.ActiveLine())
	assert.Equal(t, []tagedit.Line{first, third}, sel.SelectedLines())
	assert.Equal(t, scan.RawPos(7), sel.SelectionStart())

	sel.SetSelection(9, 12)
	assert.Equal(t, scan.RawPos(9), sel.SelectionStart())
	assert.Equal(t, scan.RawPos(12), sel.SelectionEnd())

	_, err = subs.SelectEvents(f, 1, []int{9}, 0, 0)
	require.ErrorIs(t, err, subs.ErrNoSuchLine)
}
