package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docuscraper/internal/domain"
)

func TestGetKnownClass(t *testing.T) {
	r := New()

	class, ok := r.Get("passport")
	require.True(t, ok)
	assert.Equal(t, "Passport", class.Name)
	assert.Equal(t, "individual", class.Category)
	assert.Equal(t, []string{".pdf", ".jpg", ".png"}, class.FileTypes)
	assert.Len(t, class.SearchQueries, 4)
}

func TestGetNormalizesID(t *testing.T) {
	r := New()

	class, ok := r.Get("Utility Bill")
	require.True(t, ok)
	assert.Equal(t, "utility_bill", class.ID)
}

func TestGetUnknownClass(t *testing.T) {
	r := New()

	_, ok := r.Get("tax_return")
	assert.False(t, ok)
}

func TestAllAndByCategory(t *testing.T) {
	r := New()

	assert.Len(t, r.All(), 6)
	assert.Len(t, r.ByCategory("company"), 3)
	assert.Len(t, r.ByCategory("individual"), 3)
	assert.Empty(t, r.ByCategory("government"))
}

func TestLoadFileOverridesBuiltins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "classes.json")
	content := `[{"id":"invoice","name":"Invoice","category":"company","file_types":[".pdf"],"search_queries":["invoice sample filetype:pdf"]}]`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	r, err := LoadFile(path)
	require.NoError(t, err)

	assert.Len(t, r.All(), 1)
	class, ok := r.Get("invoice")
	require.True(t, ok)
	assert.Equal(t, "Invoice", class.Name)
}

func TestLoadFileRejectsInvalidClass(t *testing.T) {
	path := filepath.Join(t.TempDir(), "classes.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"name":"No ID"}]`), 0o644))

	_, err := LoadFile(path)
	assert.Error(t, err)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile("/nonexistent/classes.json")
	assert.Error(t, err)
}

func TestNewFromClassesPreservesOrder(t *testing.T) {
	r := NewFromClasses(
		domain.DocumentClass{ID: "b", Category: "company", FileTypes: []string{".pdf"}},
		domain.DocumentClass{ID: "a", Category: "company", FileTypes: []string{".pdf"}},
	)

	all := r.All()
	require.Len(t, all, 2)
	assert.Equal(t, "b", all[0].ID)
	assert.Equal(t, "a", all[1].ID)
}
