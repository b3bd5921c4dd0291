package domain

import "strings"

// Default metadata values applied to documents that omit them.
const (
	DefaultSource   = "Agricultural Knowledge Base"
	DefaultCategory = "general"
	DefaultCrop     = "general"
	DefaultLanguage = "en"
)

// Document represents a titled unit of agricultural knowledge text.
type Document struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Source   string `json:"source,omitempty"`
	Category string `json:"category,omitempty"`
	Crop     string `json:"crop,omitempty"`
	Language string `json:"language,omitempty"`
}

// ValidateDocument checks that a document carries the fields required for indexing.
func ValidateDocument(d *Document) error {
	if d == nil {
		return ErrMissingContent
	}
	if strings.TrimSpace(d.Title) == "" {
		return ErrMissingTitle
	}
	if strings.TrimSpace(d.Content) == "" {
		return ErrMissingContent
	}
	return nil
}

// ApplyDocumentDefaults fills missing metadata with generic values.
func ApplyDocumentDefaults(d *Document) {
	if d == nil {
		return
	}
	if d.Source == "" {
		d.Source = DefaultSource
	}
	if d.Category == "" {
		d.Category = DefaultCategory
	}
	if d.Crop == "" {
		d.Crop = DefaultCrop
	}
	if d.Language == "" {
		d.Language = DefaultLanguage
	}
}

// FilterIndexable drops invalid documents and applies defaults to the rest.
// Invalid documents are skipped, never fatal to the batch.
func FilterIndexable(docs []Document) []Document {
	out := make([]Document, 0, len(docs))
	for i := range docs {
		doc := docs[i]
		if err := ValidateDocument(&doc); err != nil {
			continue
		}
		ApplyDocumentDefaults(&doc)
		out = append(out, doc)
	}
	return out
}
