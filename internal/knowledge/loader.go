package knowledge

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/krishnabalajiwork/farmai-assistant/internal/domain"
)

// RemoteStore fetches externally published knowledge documents, typically from
// an S3-compatible bucket.
type RemoteStore interface {
	FetchDocuments(ctx context.Context) ([]domain.Document, error)
}

// Loader assembles the knowledge base from bundled defaults, a local JSON
// directory, and an optional remote store. Invalid documents are filtered out;
// the remainder is still usable.
type Loader struct {
	dataDir string
	remote  RemoteStore
}

// NewLoader creates a Loader. dataDir and remote may be empty/nil.
func NewLoader(dataDir string, remote RemoteStore) *Loader {
	return &Loader{dataDir: dataDir, remote: remote}
}

// Load returns the merged, validated document set. It never returns an empty
// slice: when every source comes up empty the fallback document is used.
func (l *Loader) Load(ctx context.Context) []domain.Document {
	docs := BuiltinDocuments()

	if l.dataDir != "" {
		fileDocs, err := loadFromDir(l.dataDir)
		if err != nil {
			log.Printf("knowledge: skipping local data dir %s: %v", l.dataDir, err)
		} else {
			docs = append(docs, fileDocs...)
		}
	}

	if l.remote != nil {
		remoteDocs, err := l.remote.FetchDocuments(ctx)
		if err != nil {
			log.Printf("knowledge: skipping remote documents: %v", err)
		} else {
			docs = append(docs, remoteDocs...)
		}
	}

	valid := domain.FilterIndexable(docs)
	if len(valid) == 0 {
		fallback := FallbackDocument()
		domain.ApplyDocumentDefaults(&fallback)
		valid = []domain.Document{fallback}
	}

	log.Printf("knowledge: loaded %d documents", len(valid))
	return valid
}

// loadFromDir reads every *.json file in dir. Each file holds either a single
// document object or an array of documents.
func loadFromDir(dir string) ([]domain.Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var docs []domain.Document
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			log.Printf("knowledge: error reading %s: %v", entry.Name(), err)
			continue
		}

		parsed, err := ParseDocuments(data)
		if err != nil {
			log.Printf("knowledge: error parsing %s: %v", entry.Name(), err)
			continue
		}
		docs = append(docs, parsed...)
	}

	return docs, nil
}

// ParseDocuments decodes a JSON payload holding one document or a list of them.
func ParseDocuments(data []byte) ([]domain.Document, error) {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		var list []domain.Document
		if err := json.Unmarshal(data, &list); err != nil {
			return nil, err
		}
		return list, nil
	}

	var single domain.Document
	if err := json.Unmarshal(data, &single); err != nil {
		return nil, err
	}
	return []domain.Document{single}, nil
}
