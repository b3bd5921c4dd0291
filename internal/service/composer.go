package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/krishnabalajiwork/farmai-assistant/internal/domain"
)

// CompletionClient defines the interface for text generation
type CompletionClient interface {
	Complete(ctx context.Context, prompt string, temperature float32, maxTokens int) (string, error)
}

// ContextRetriever defines the retrieval interface the composer consumes.
type ContextRetriever interface {
	Retrieve(ctx context.Context, question string) (domain.RetrievalResult, error)
}

const (
	defaultMaxContextChars = 2000
	defaultTemperature     = 0.1
	defaultAnswerTokens    = 512
	snippetMaxChars        = 220

	// NoKnowledgeNotice is emitted when retrieval yields no usable chunks.
	NoKnowledgeNotice = "No relevant agricultural knowledge was found for this question."
	// ProviderApology is returned in-band when the completion provider fails.
	ProviderApology = "I apologize, but I encountered an error while generating an answer. Please try again."
	// NotReadyNotice is returned when the knowledge index has not been built.
	NotReadyNotice = "The system is not ready yet. Please try again shortly."
)

const answerPromptTemplate = `You are FarmAI, an assistant for agricultural advice. Answer the question using only the provided context. If the context is insufficient to answer, say so plainly instead of guessing.

Context:
%s

Question: %s

Answer:`

// ComposerConfig controls prompt composition.
type ComposerConfig struct {
	MaxContextChars int
	Temperature     float32
	MaxTokens       int
}

// DefaultComposerConfig returns the default composition settings.
func DefaultComposerConfig() ComposerConfig {
	return ComposerConfig{
		MaxContextChars: defaultMaxContextChars,
		Temperature:     defaultTemperature,
		MaxTokens:       defaultAnswerTokens,
	}
}

// Composer assembles a grounded prompt from retrieved chunks and invokes the
// completion provider. Answer always returns a well-formed AgentResponse;
// provider failures are converted to user-facing text, never surfaced raw.
type Composer struct {
	retriever ContextRetriever
	llm       CompletionClient
	cfg       ComposerConfig
}

// NewComposer creates a Composer.
func NewComposer(retriever ContextRetriever, llm CompletionClient, cfg ComposerConfig) *Composer {
	if cfg.MaxContextChars <= 0 {
		cfg.MaxContextChars = defaultMaxContextChars
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = defaultAnswerTokens
	}
	return &Composer{retriever: retriever, llm: llm, cfg: cfg}
}

// Answer retrieves context for the question, invokes the completion provider
// once, and packages the generated text with the provenance of the chunks
// actually included in the prompt.
func (c *Composer) Answer(ctx context.Context, question string) *domain.AgentResponse {
	resp := domain.NewAgentResponse(question)

	knowledgeCtx, sources, err := c.Context(ctx, question)
	if err != nil {
		resp.Response = retrievalFailureText(err)
		return resp
	}

	prompt := fmt.Sprintf(answerPromptTemplate, promptContext(knowledgeCtx), question)
	text, err := c.llm.Complete(ctx, prompt, c.cfg.Temperature, c.cfg.MaxTokens)
	if err != nil {
		log.Printf("composer: completion failed: %v", err)
		resp.Response = ProviderApology
		resp.Sources = []domain.Source{}
		return resp
	}

	if knowledgeCtx == "" {
		resp.Response = NoKnowledgeNotice + " " + strings.TrimSpace(text)
		resp.Sources = []domain.Source{}
		return resp
	}

	resp.Response = strings.TrimSpace(text)
	resp.Sources = sources
	return resp
}

// Context retrieves chunks for the question and composes a bounded context
// string plus the provenance of the chunks that made the cut. The cap is
// honored by dropping lowest-ranked whole chunks, never by mid-chunk cuts.
func (c *Composer) Context(ctx context.Context, question string) (string, []domain.Source, error) {
	result, err := c.retriever.Retrieve(ctx, question)
	if err != nil {
		return "", nil, err
	}

	var (
		parts   []string
		sources []domain.Source
		total   int
	)
	for _, entry := range result.Entries {
		length := len([]rune(entry.Chunk.Content))
		if total > 0 && total+length > c.cfg.MaxContextChars {
			break
		}
		parts = append(parts, entry.Chunk.Content)
		sources = append(sources, domain.Source{
			Title:    entry.Chunk.Title,
			Category: entry.Chunk.Category,
			Excerpt:  makeSnippet(entry.Chunk.Content),
		})
		total += length
		if total >= c.cfg.MaxContextChars {
			break
		}
	}

	if sources == nil {
		sources = []domain.Source{}
	}
	return strings.Join(parts, "\n\n"), sources, nil
}

func promptContext(knowledgeCtx string) string {
	if knowledgeCtx == "" {
		return "(no matching knowledge found)"
	}
	return knowledgeCtx
}

func retrievalFailureText(err error) string {
	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) && domainErr.Code == domain.ErrCodeNotInitialized {
		return NotReadyNotice
	}
	log.Printf("composer: retrieval failed: %v", err)
	return ProviderApology
}

func makeSnippet(content string) string {
	if content == "" {
		return ""
	}
	clean := strings.Join(strings.Fields(content), " ")
	runes := []rune(clean)
	if len(runes) <= snippetMaxChars {
		return clean
	}
	return string(runes[:snippetMaxChars-3]) + "..."
}
