// Package report renders summaries of the document catalog.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gingfrederik/docx"
	"go.uber.org/zap"

	"docuscraper/internal/domain"
)

// ClassSummary aggregates catalog figures for one document class.
type ClassSummary struct {
	DocClass   string `json:"doc_class"`
	Count      int    `json:"count"`
	Validated  int    `json:"validated"`
	TotalBytes int64  `json:"total_bytes"`
}

// Summary aggregates the whole catalog (or one class of it).
type Summary struct {
	GeneratedAt    time.Time      `json:"generated_at"`
	TotalDocuments int            `json:"total_documents"`
	TotalBytes     int64          `json:"total_bytes"`
	Classes        []ClassSummary `json:"classes"`
}

// Build computes a summary over the given records. Classes are sorted by
// id so report output is stable.
func Build(docs []domain.DocumentRecord) Summary {
	sum := Summary{GeneratedAt: time.Now()}
	byClass := make(map[string]*ClassSummary)

	for _, doc := range docs {
		cs, ok := byClass[doc.DocClass]
		if !ok {
			cs = &ClassSummary{DocClass: doc.DocClass}
			byClass[doc.DocClass] = cs
		}
		cs.Count++
		cs.TotalBytes += doc.FileSize
		if doc.Validated != nil && *doc.Validated {
			cs.Validated++
		}
		sum.TotalDocuments++
		sum.TotalBytes += doc.FileSize
	}

	for _, cs := range byClass {
		sum.Classes = append(sum.Classes, *cs)
	}
	sort.Slice(sum.Classes, func(i, j int) bool {
		return sum.Classes[i].DocClass < sum.Classes[j].DocClass
	})
	return sum
}

// Generator writes report files beneath a fixed directory.
type Generator struct {
	dir    string
	logger *zap.Logger
}

func NewGenerator(dir string, l *zap.Logger) *Generator {
	return &Generator{dir: dir, logger: l}
}

// WriteText renders the summary as a plain-text report and returns the
// written path.
func (g *Generator) WriteText(reportID string, sum Summary, docs []domain.DocumentRecord) (string, error) {
	if err := os.MkdirAll(g.dir, 0o755); err != nil {
		return "", err
	}
	dest := filepath.Join(g.dir, fmt.Sprintf("report_%s.txt", reportID))

	var b strings.Builder
	b.WriteString("Document Catalog Report\n")
	b.WriteString("Generated: " + sum.GeneratedAt.Format(time.RFC3339) + "\n")
	fmt.Fprintf(&b, "Total documents: %d (%d bytes)\n\n", sum.TotalDocuments, sum.TotalBytes)

	for _, cs := range sum.Classes {
		fmt.Fprintf(&b, "[%s] documents=%d validated=%d size=%d bytes\n",
			cs.DocClass, cs.Count, cs.Validated, cs.TotalBytes)
	}

	b.WriteString("\n")
	for _, doc := range docs {
		fmt.Fprintf(&b, "%s\t%s\t%s\t%d\t%s\n",
			doc.DocClass, doc.Title, doc.FileType, doc.FileSize, doc.URL)
	}

	if err := os.WriteFile(dest, []byte(b.String()), 0o644); err != nil {
		return "", err
	}
	g.logger.Info("report written", zap.String("file_path", dest), zap.String("format", "text"))
	return dest, nil
}

// WriteDocx renders the summary as a Word document and returns the
// written path.
func (g *Generator) WriteDocx(reportID string, sum Summary, docs []domain.DocumentRecord) (string, error) {
	if err := os.MkdirAll(g.dir, 0o755); err != nil {
		return "", err
	}
	dest := filepath.Join(g.dir, fmt.Sprintf("report_%s.docx", reportID))

	f := docx.NewFile()

	titleP := f.AddParagraph()
	titleRun := titleP.AddText("Document Catalog Report")
	titleRun.Size(20)

	meta := f.AddParagraph()
	metaRun := meta.AddText(fmt.Sprintf("Generated: %s | Total documents: %d",
		sum.GeneratedAt.Format(time.RFC3339), sum.TotalDocuments))
	metaRun.Size(10)
	metaRun.Color("808080")
	f.AddParagraph() // Spacer

	for _, cs := range sum.Classes {
		p := f.AddParagraph()
		run := p.AddText(cs.DocClass)
		run.Size(16)

		p = f.AddParagraph()
		run = p.AddText(fmt.Sprintf("Documents: %d | Validated: %d | Size: %d bytes",
			cs.Count, cs.Validated, cs.TotalBytes))
		run.Size(10)
	}

	f.AddParagraph()
	for _, doc := range docs {
		p := f.AddParagraph()
		run := p.AddText(doc.Title)
		run.Size(12)

		p = f.AddParagraph()
		run = p.AddText(fmt.Sprintf("%s | %s | %d bytes", doc.DocClass, doc.FileType, doc.FileSize))
		run.Size(10)
		run.Color("808080")

		p = f.AddParagraph()
		run = p.AddText(doc.URL)
		run.Size(10)
	}

	if err := f.Save(dest); err != nil {
		return "", err
	}
	g.logger.Info("report written", zap.String("file_path", dest), zap.String("format", "docx"))
	return dest, nil
}
