package treeview

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindDerivation(t *testing.T) {
	assert.Equal(t, KindFolder, (&FileRecord{MimeType: FolderMimeType}).Kind())
	assert.Equal(t, KindFile, (&FileRecord{MimeType: "application/pdf"}).Kind())
	// Unknown and empty MIME types are files; topology never guesses.
	assert.Equal(t, KindFile, (&FileRecord{MimeType: "application/x-unknown"}).Kind())
	assert.Equal(t, KindFile, (&FileRecord{}).Kind())
}

func TestCategory(t *testing.T) {
	tests := []struct {
		mime string
		want Category
	}{
		{"application/pdf", CategoryPDF},
		{"application/vnd.google-apps.document", CategoryDocument},
		{"application/vnd.openxmlformats-officedocument.wordprocessingml.document", CategoryDocument},
		{"application/vnd.google-apps.spreadsheet", CategorySpreadsheet},
		{"application/vnd.ms-excel", CategorySpreadsheet},
		{"application/vnd.google-apps.presentation", CategoryPresentation},
		{"image/png", CategoryImage},
		{"audio/x-m4a", CategoryAudio},
		{"video/mp4", CategoryVideo},
		{"text/plain", CategoryText},
		{"application/octet-stream", CategoryOther},
		{FolderMimeType, CategoryOther},
	}

	for _, tt := range tests {
		t.Run(tt.mime, func(t *testing.T) {
			r := &FileRecord{MimeType: tt.mime}
			assert.Equal(t, tt.want, r.Category())
		})
	}
}

func TestSizeHint(t *testing.T) {
	tests := []struct {
		name     string
		metadata map[string]any
		want     int64
	}{
		{"no metadata", nil, 0},
		{"numeric size", map[string]any{"size": float64(2048)}, 2048},
		{"string size", map[string]any{"size": "1024"}, 1024},
		{
			name:     "priority order: size wins over fileSize",
			metadata: map[string]any{"fileSize": "999", "size": "111"},
			want:     111,
		},
		{
			name:     "empty string falls through to next key",
			metadata: map[string]any{"size": "", "quotaBytesUsed": "512"},
			want:     512,
		},
		{"legacy key", map[string]any{"file_size": float64(77)}, 77},
		{"junk degrades to zero", map[string]any{"size": "not-a-number"}, 0},
		{"nil value falls through", map[string]any{"size": nil, "fileSize": "42"}, 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &FileRecord{Metadata: tt.metadata}
			assert.Equal(t, tt.want, r.SizeHint())
		})
	}
}

func TestExpandKey(t *testing.T) {
	withPath := &FileRecord{ID: "id-1", PathKey: "Archive/Notes"}
	assert.Equal(t, "Archive/Notes", withPath.ExpandKey())

	withoutPath := &FileRecord{ID: "id-2"}
	assert.Equal(t, "id-2", withoutPath.ExpandKey())
}

func TestViewStateNilSafety(t *testing.T) {
	var view *ViewState
	rec := &FileRecord{ID: "d1", Name: "x.pdf", MimeType: "application/pdf"}

	assert.False(t, view.IsExpanded(rec))
	assert.False(t, view.IsSelected(rec))
	assert.True(t, view.allowsFile(rec))
}

func TestTypeFilterMatches(t *testing.T) {
	f := TypeFilter{Name: "Docs", MimeTypes: []string{
		"application/vnd.google-apps.document",
		"application/msword",
	}}
	assert.True(t, f.Matches("application/msword"))
	assert.False(t, f.Matches("application/pdf"))
	assert.False(t, TypeFilter{}.Matches("application/pdf"))
}
