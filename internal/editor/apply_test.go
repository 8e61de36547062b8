package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bovan/import-sorter/pkg/types"
)

func edit(startLine, startChar, endLine, endChar int, newText string) types.TextEdit {
	return types.TextEdit{
		Range: types.Range{
			Start: types.Position{Line: startLine, Character: startChar},
			End:   types.Position{Line: endLine, Character: endChar},
		},
		NewText: newText,
	}
}

func TestApplyEditsToText(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		edits    []types.TextEdit
		expected string
	}{
		{
			name:     "no edits",
			text:     "abc",
			edits:    nil,
			expected: "abc",
		},
		{
			name:     "delete one line",
			text:     "import b;\nimport a;\ncode\n",
			edits:    []types.TextEdit{edit(0, 0, 1, 0, "")},
			expected: "import a;\ncode\n",
		},
		{
			name: "two deletes in one batch",
			text: "b\na\ncode\n",
			edits: []types.TextEdit{
				edit(0, 0, 1, 0, ""),
				edit(1, 0, 2, 0, ""),
			},
			expected: "code\n",
		},
		{
			name: "delete block and insert at its head",
			text: "import b;\nimport a;\n\ncode\n",
			edits: []types.TextEdit{
				edit(0, 0, 1, 0, ""),
				edit(1, 0, 2, 0, ""),
				edit(0, 0, 0, 0, "import a;\nimport b;\n"),
			},
			expected: "import a;\nimport b;\n\ncode\n",
		},
		{
			name:     "insert at end of text",
			text:     "a\n",
			edits:    []types.TextEdit{edit(1, 0, 1, 0, "b\n")},
			expected: "a\nb\n",
		},
		{
			name:     "replace within a line",
			text:     "hello world",
			edits:    []types.TextEdit{edit(0, 6, 0, 11, "there")},
			expected: "hello there",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ApplyEditsToText(tt.text, tt.edits)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestApplyEditsToTextErrors(t *testing.T) {
	t.Run("overlapping edits", func(t *testing.T) {
		_, err := ApplyEditsToText("abcdef\n", []types.TextEdit{
			edit(0, 0, 0, 4, ""),
			edit(0, 2, 0, 6, ""),
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "overlapping")
	})

	t.Run("line out of range", func(t *testing.T) {
		_, err := ApplyEditsToText("a\n", []types.TextEdit{edit(5, 0, 5, 0, "x")})
		require.Error(t, err)
	})

	t.Run("character out of range", func(t *testing.T) {
		_, err := ApplyEditsToText("a", []types.TextEdit{edit(0, 10, 0, 10, "x")})
		require.Error(t, err)
	})

	t.Run("end before start", func(t *testing.T) {
		_, err := ApplyEditsToText("abc\ndef\n", []types.TextEdit{edit(1, 0, 0, 0, "")})
		require.Error(t, err)
	})
}

func TestMemoryHostApplyAndRecord(t *testing.T) {
	h := NewMemoryHost()
	h.Open(Document{URI: "file:///a.ts", LanguageID: "typescript", Text: "b\na\n"})

	require.NoError(t, h.ApplyEdits("file:///a.ts", []types.TextEdit{edit(0, 0, 1, 0, "")}))
	require.NoError(t, h.ApplyEdits("file:///a.ts", []types.TextEdit{edit(0, 0, 0, 0, "a\nb\n")}))

	doc, ok := h.Lookup("file:///a.ts")
	require.True(t, ok)
	assert.Equal(t, "a\nb\na\n", doc.Text)
	assert.Len(t, h.Batches("file:///a.ts"), 2)
}

func TestMemoryHostApplyUnknownDocument(t *testing.T) {
	h := NewMemoryHost()
	err := h.ApplyEdits("file:///missing.ts", []types.TextEdit{edit(0, 0, 0, 0, "x")})
	require.Error(t, err)
}

func TestMemoryHostSaveCommitsPendingEdits(t *testing.T) {
	h := NewMemoryHost()
	h.Open(Document{URI: "file:///a.ts", LanguageID: "typescript", Text: "b\na\n\ncode\n"})

	h.RegisterSaveEdits("file:///a.ts", []types.TextEdit{
		edit(0, 0, 1, 0, ""),
		edit(1, 0, 2, 0, ""),
		edit(0, 0, 0, 0, "a\nb\n"),
	})

	// Nothing applied until the save happens.
	doc, _ := h.Lookup("file:///a.ts")
	assert.Equal(t, "b\na\n\ncode\n", doc.Text)

	require.NoError(t, h.Save("file:///a.ts"))
	doc, _ = h.Lookup("file:///a.ts")
	assert.Equal(t, "a\nb\n\ncode\n", doc.Text)
	assert.Empty(t, h.PendingSaveEdits("file:///a.ts"))
}

func TestMemoryHostStatusAndNotices(t *testing.T) {
	h := NewMemoryHost()

	h.Show("Sorting imports: 0")
	h.Update("Sorting imports: 3")
	text, visible := h.Status()
	assert.Equal(t, "Sorting imports: 3", text)
	assert.True(t, visible)

	h.Hide()
	_, visible = h.Status()
	assert.False(t, visible)

	h.Notify("something happened")
	assert.Equal(t, []string{"something happened"}, h.Notices())
}
