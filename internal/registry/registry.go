// Package registry holds the read-only table of document classes and how
// to search for each of them.
package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"docuscraper/internal/domain"
)

// Registry is an immutable lookup table of document classes, keyed by id.
type Registry struct {
	classes map[string]domain.DocumentClass
	order   []string
}

// New returns a registry populated with the built-in document classes.
func New() *Registry {
	return NewFromClasses(builtinClasses...)
}

// NewFromClasses builds a registry from an explicit class list, preserving
// list order for All and ByCategory.
func NewFromClasses(classes ...domain.DocumentClass) *Registry {
	r := &Registry{classes: make(map[string]domain.DocumentClass, len(classes))}
	for _, c := range classes {
		id := Normalize(c.ID)
		if _, dup := r.classes[id]; !dup {
			r.order = append(r.order, id)
		}
		r.classes[id] = c
	}
	return r
}

// LoadFile reads a JSON array of document classes, replacing the built-in
// table. Malformed configuration fails fast.
func LoadFile(path string) (*Registry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document classes: %w", err)
	}
	var classes []domain.DocumentClass
	if err := json.Unmarshal(raw, &classes); err != nil {
		return nil, fmt.Errorf("parse document classes: %w", err)
	}
	for _, c := range classes {
		if c.ID == "" || len(c.FileTypes) == 0 {
			return nil, fmt.Errorf("document class %q: id and file_types are required", c.Name)
		}
	}
	return NewFromClasses(classes...), nil
}

// Normalize maps user-facing class names onto registry keys.
func Normalize(id string) string {
	return strings.ReplaceAll(strings.ToLower(id), " ", "_")
}

// Get looks up a document class by id.
func (r *Registry) Get(id string) (domain.DocumentClass, bool) {
	c, ok := r.classes[Normalize(id)]
	return c, ok
}

// All returns every document class in registration order.
func (r *Registry) All() []domain.DocumentClass {
	out := make([]domain.DocumentClass, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.classes[id])
	}
	return out
}

// ByCategory returns the classes belonging to one category, in
// registration order.
func (r *Registry) ByCategory(category string) []domain.DocumentClass {
	var out []domain.DocumentClass
	for _, id := range r.order {
		if c := r.classes[id]; c.Category == category {
			out = append(out, c)
		}
	}
	return out
}

var builtinClasses = []domain.DocumentClass{
	{
		ID:        "commercial_register",
		Name:      "Commercial Register",
		Category:  "company",
		FileTypes: []string{".pdf", ".doc", ".docx"},
		SearchQueries: []string{
			"commercial register document sample filetype:pdf",
			"business registry document filetype:pdf",
			"company register extract sample filetype:pdf",
			"commercial register certificate template filetype:pdf",
		},
		Keywords: []string{
			"commercial register", "business registry", "company registration",
			"register extract", "registration number", "commercial court",
		},
	},
	{
		ID:        "articles_of_association",
		Name:      "Articles of Association",
		Category:  "company",
		FileTypes: []string{".pdf", ".doc", ".docx"},
		SearchQueries: []string{
			"articles of association template filetype:pdf",
			"company articles of association sample filetype:pdf",
			"corporate bylaws sample document filetype:pdf",
			"company constitution document example filetype:pdf",
		},
		Keywords: []string{
			"articles of association", "bylaws", "company constitution",
			"corporate governance", "shareholders", "board of directors",
		},
	},
	{
		ID:        "incorporation",
		Name:      "Incorporation",
		Category:  "company",
		FileTypes: []string{".pdf", ".doc", ".docx"},
		SearchQueries: []string{
			"certificate of incorporation sample filetype:pdf",
			"incorporation document template filetype:pdf",
			"company incorporation certificate filetype:pdf",
			"business incorporation document sample filetype:pdf",
		},
		Keywords: []string{
			"certificate of incorporation", "incorporated", "company formation",
			"registration date", "company number", "corporate identity",
		},
	},
	{
		ID:        "passport",
		Name:      "Passport",
		Category:  "individual",
		FileTypes: []string{".pdf", ".jpg", ".png"},
		SearchQueries: []string{
			"passport sample template filetype:pdf",
			"blank passport document example filetype:jpg",
			"passport specimen filetype:pdf",
			"sample passport document filetype:png",
		},
		Keywords: []string{
			"passport", "travel document", "identification", "nationality",
			"date of issue", "date of expiry", "bearer",
		},
	},
	{
		ID:        "id",
		Name:      "ID",
		Category:  "individual",
		FileTypes: []string{".pdf", ".jpg", ".png"},
		SearchQueries: []string{
			"national ID card sample filetype:pdf",
			"identity card template example filetype:jpg",
			"ID document specimen filetype:pdf",
			"government issued ID sample filetype:png",
		},
		Keywords: []string{
			"identity card", "identification", "national ID", "personal number",
			"date of issue", "date of expiry", "government issued",
		},
	},
	{
		ID:        "utility_bill",
		Name:      "Utility Bill",
		Category:  "individual",
		FileTypes: []string{".pdf", ".doc", ".docx"},
		SearchQueries: []string{
			"utility bill sample template filetype:pdf",
			"electricity bill example document filetype:pdf",
			"water bill sample document filetype:pdf",
			"gas bill template example filetype:pdf",
		},
		Keywords: []string{
			"utility bill", "electricity", "water", "gas", "service address",
			"account number", "billing period", "payment due",
		},
	},
}
