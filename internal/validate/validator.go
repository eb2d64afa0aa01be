// Package validate inspects downloaded files against the MIME types
// expected for their declared extension.
package validate

import (
	"io"
	"os"
	"strings"

	"github.com/h2non/filetype"
	"go.uber.org/zap"

	"docuscraper/internal/domain"
	"docuscraper/internal/monitoring"
)

const (
	// filetype matchers need at most the first 261 bytes of a file.
	sniffHeaderSize = 261

	minReasonableSize = 10 * 1024
	maxReasonableSize = 10 * 1024 * 1024
)

var extToMIME = map[string][]string{
	".pdf":  {"application/pdf"},
	".docx": {"application/vnd.openxmlformats-officedocument.wordprocessingml.document"},
	".doc":  {"application/msword"},
	".xlsx": {"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"},
	".xls":  {"application/vnd.ms-excel"},
	".txt":  {"text/plain"},
	".jpg":  {"image/jpeg"},
	".jpeg": {"image/jpeg"},
	".png":  {"image/png"},
}

// ExpectedMIMETypes returns the MIME types a file with the given extension
// is allowed to contain. Unknown extensions return nil.
func ExpectedMIMETypes(ext string) []string {
	return extToMIME[strings.ToLower(ext)]
}

// Validator checks a downloaded document's actual byte content.
type Validator struct {
	metrics *monitoring.Metrics
	logger  *zap.Logger
}

func New(m *monitoring.Metrics, l *zap.Logger) *Validator {
	return &Validator{metrics: m, logger: l}
}

// Validate runs the existence, size and content checks against the record,
// short-circuiting on the first hard failure. As a side effect it annotates
// the record with the detected MIME type. A size outside the reasonable
// window logs a warning but does not fail the document on its own.
func (v *Validator) Validate(rec *domain.DocumentRecord, expectedTypes []string) bool {
	info, err := os.Stat(rec.FilePath)
	if err != nil {
		v.logResult(rec, false, "document file not found")
		return false
	}

	if info.Size() == 0 {
		v.logResult(rec, false, "empty document file")
		return false
	}

	if info.Size() < minReasonableSize || info.Size() > maxReasonableSize {
		v.logger.Warn("suspicious file size",
			zap.String("file_path", rec.FilePath),
			zap.Int64("file_size", info.Size()))
	}

	detected := v.sniffMIMEType(rec)
	rec.MIMEType = detected

	if len(expectedTypes) == 0 {
		v.logResult(rec, true, "")
		return true
	}

	for _, expected := range expectedTypes {
		if strings.Contains(detected, expected) {
			v.logResult(rec, true, "")
			return true
		}
	}

	v.logResult(rec, false, "file type mismatch: "+detected)
	return false
}

// sniffMIMEType detects the true MIME type from file bytes. If content
// detection is inconclusive it falls back to the extension lookup table
// and treats that as authoritative.
func (v *Validator) sniffMIMEType(rec *domain.DocumentRecord) string {
	detected := v.sniffHeader(rec.FilePath)
	if detected != "" {
		return detected
	}
	if types := ExpectedMIMETypes(rec.FileType); len(types) > 0 {
		return types[0]
	}
	return "application/octet-stream"
}

func (v *Validator) sniffHeader(filePath string) string {
	f, err := os.Open(filePath)
	if err != nil {
		return ""
	}
	defer f.Close()

	buf := make([]byte, sniffHeaderSize)
	n, err := io.ReadFull(f, buf)
	if err != nil && err != io.ErrUnexpectedEOF {
		return ""
	}

	kind, err := filetype.Match(buf[:n])
	if err != nil || kind == filetype.Unknown {
		return ""
	}
	return kind.MIME.Value
}

func (v *Validator) logResult(rec *domain.DocumentRecord, valid bool, reason string) {
	fields := []zap.Field{
		zap.String("operation", "document_validation"),
		zap.String("file_path", rec.FilePath),
		zap.String("doc_class", rec.DocClass),
		zap.String("mime_type", rec.MIMEType),
		zap.Bool("is_valid", valid),
	}
	if valid {
		v.metrics.IncValidations("valid")
		v.logger.Info("document validated", fields...)
		return
	}
	v.metrics.IncValidations("invalid")
	v.logger.Warn("document invalid", append(fields, zap.String("reason", reason))...)
}
