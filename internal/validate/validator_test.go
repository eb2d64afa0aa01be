package validate

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"docuscraper/internal/domain"
	"docuscraper/internal/monitoring"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}

func newTestValidator(t *testing.T) *Validator {
	t.Helper()
	return New(monitoring.NewMetrics(prometheus.NewRegistry()), zap.NewNop())
}

func writeTempFile(t *testing.T, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, content, 0o644))
	return path
}

func TestValidateMissingFile(t *testing.T) {
	v := newTestValidator(t)
	rec := &domain.DocumentRecord{FilePath: "/nonexistent/doc.pdf", FileType: ".pdf"}

	assert.False(t, v.Validate(rec, ExpectedMIMETypes(".pdf")))
}

func TestValidateZeroByteFileAlwaysFails(t *testing.T) {
	v := newTestValidator(t)
	rec := &domain.DocumentRecord{
		FilePath: writeTempFile(t, "empty.pdf", nil),
		FileType: ".pdf",
	}

	assert.False(t, v.Validate(rec, ExpectedMIMETypes(".pdf")))
	assert.False(t, v.Validate(rec, nil))
}

func TestValidateMatchingContent(t *testing.T) {
	v := newTestValidator(t)
	rec := &domain.DocumentRecord{
		FilePath: writeTempFile(t, "doc.pdf", []byte("%PDF-1.4 fake document")),
		FileType: ".pdf",
	}

	assert.True(t, v.Validate(rec, ExpectedMIMETypes(".pdf")))
	assert.Equal(t, "application/pdf", rec.MIMEType)
}

func TestValidateMismatchedContent(t *testing.T) {
	v := newTestValidator(t)
	// PNG bytes behind a .pdf name.
	rec := &domain.DocumentRecord{
		FilePath: writeTempFile(t, "doc.pdf", append(pngHeader, bytes.Repeat([]byte{0}, 64)...)),
		FileType: ".pdf",
	}

	assert.False(t, v.Validate(rec, ExpectedMIMETypes(".pdf")))
	assert.Equal(t, "image/png", rec.MIMEType)
}

func TestValidateFallsBackToExtensionWhenSniffInconclusive(t *testing.T) {
	v := newTestValidator(t)
	rec := &domain.DocumentRecord{
		FilePath: writeTempFile(t, "notes.txt", []byte("plain text, no magic bytes")),
		FileType: ".txt",
	}

	assert.True(t, v.Validate(rec, ExpectedMIMETypes(".txt")))
	assert.Equal(t, "text/plain", rec.MIMEType)
}

func TestValidateSuspiciousSizeIsWarningOnly(t *testing.T) {
	v := newTestValidator(t)
	// Well under 10 KiB, still valid if the content matches.
	rec := &domain.DocumentRecord{
		FilePath: writeTempFile(t, "tiny.pdf", []byte("%PDF-1.4")),
		FileType: ".pdf",
	}

	assert.True(t, v.Validate(rec, ExpectedMIMETypes(".pdf")))
}

func TestValidateNoExpectedTypesPasses(t *testing.T) {
	v := newTestValidator(t)
	rec := &domain.DocumentRecord{
		FilePath: writeTempFile(t, "doc.xyz", []byte("%PDF-1.4 content")),
		FileType: ".xyz",
	}

	assert.True(t, v.Validate(rec, ExpectedMIMETypes(".xyz")))
	assert.Equal(t, "application/pdf", rec.MIMEType)
}

func TestExpectedMIMETypes(t *testing.T) {
	assert.Equal(t, []string{"application/pdf"}, ExpectedMIMETypes(".pdf"))
	assert.Equal(t, []string{"application/pdf"}, ExpectedMIMETypes(".PDF"))
	assert.Equal(t, []string{"image/jpeg"}, ExpectedMIMETypes(".jpeg"))
	assert.Nil(t, ExpectedMIMETypes(".exe"))
}
