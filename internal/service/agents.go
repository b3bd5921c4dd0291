package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/krishnabalajiwork/farmai-assistant/internal/domain"
)

// Pipeline stage names recorded in AgentResponse.Workflow.
const (
	StageClassification = "classification"
	StageDiagnosis      = "diagnosis"
	StageRecommendation = "recommendation"
	StageVerification   = "verification"
	StageRAGFallback    = "rag_fallback"
	StageError          = "error"
)

// Query categories produced by the classification stage.
const (
	CategoryDisease      = "disease"
	CategoryPest         = "pest"
	CategoryManagement   = "management"
	CategoryGeneral      = "general"
	CategoryProblem      = "problem"
	CategoryBestPractice = "best_practice"
)

const sourceFingerprintChars = 80

const classifyPromptTemplate = `Classify this agricultural query into exactly one of the following categories: disease, pest, management, general, problem.
Respond with the single category word and nothing else.

Query: %s

Category:`

const diagnosePromptTemplate = `You are an agricultural diagnostician. Based on the context below, diagnose the problem described in the question. State the most likely problem, the supporting symptoms, probable causes, and your confidence level.%s

Context:
%s

Question: %s

Diagnosis:`

const recommendPromptTemplate = `You are an agricultural advisor. Using the context below%s, give actionable recommendations: immediate steps, treatment options, prevention measures, an expected timeline, and when to escalate to a local extension officer.

Context:
%s
%s
Question: %s

Recommendations:`

const verifyPromptTemplate = `Review the following agricultural advice for safety and completeness. If it is safe and complete, return it unchanged. If it needs correction, return an improved version. Return only the advice text.

Question: %s

Advice:
%s`

// AnswerService defines the composer interface the orchestrator consumes.
type AnswerService interface {
	Answer(ctx context.Context, question string) *domain.AgentResponse
	Context(ctx context.Context, question string) (string, []domain.Source, error)
}

// Orchestrator routes a question through a fixed pipeline of specialist
// stages: classify, then diagnose and/or recommend, then verify. Every stage
// is individually fault-isolated; a stage failure degrades to a fallback for
// that stage and the pipeline continues.
type Orchestrator struct {
	composer    AnswerService
	llm         CompletionClient
	temperature float32
	maxTokens   int
}

// NewOrchestrator creates an Orchestrator.
func NewOrchestrator(composer AnswerService, llm CompletionClient) *Orchestrator {
	return &Orchestrator{
		composer:    composer,
		llm:         llm,
		temperature: defaultTemperature,
		maxTokens:   1024,
	}
}

// Process answers a question through the agent pipeline. It always returns a
// well-formed AgentResponse; any escaped fault is converted at this boundary
// into an apologetic error response with Workflow ["error"].
func (o *Orchestrator) Process(ctx context.Context, query string) (resp *domain.AgentResponse) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("orchestrator: recovered from panic: %v", r)
			resp = errorResponse(query)
		}
	}()

	query = strings.TrimSpace(query)
	if query == "" {
		resp = domain.NewAgentResponse(query)
		resp.Response = "Please ask a question about your crops or farming practices."
		resp.Workflow = []string{StageError}
		return resp
	}

	category := o.classify(ctx, query)

	switch category {
	case CategoryDisease, CategoryPest, CategoryProblem:
		resp = o.diagnoseAndRecommend(ctx, query)
	case CategoryManagement, CategoryGeneral, CategoryBestPractice:
		resp = o.recommendOnly(ctx, query)
	default:
		resp = o.composer.Answer(ctx, query)
		resp.Workflow = append(resp.Workflow, StageRAGFallback)
	}

	resp.Workflow = append([]string{StageClassification}, resp.Workflow...)
	o.verify(ctx, query, resp)
	return resp
}

// classify asks the completion provider for one label from the closed set.
// Any unrecognized output or provider failure defaults to general;
// classification failure never aborts the pipeline.
func (o *Orchestrator) classify(ctx context.Context, query string) string {
	prompt := fmt.Sprintf(classifyPromptTemplate, query)
	label, err := o.llm.Complete(ctx, prompt, o.temperature, 8)
	if err != nil {
		log.Printf("orchestrator: classification failed, defaulting to general: %v", err)
		return CategoryGeneral
	}

	normalized := strings.ToLower(strings.TrimSpace(label))
	normalized = strings.Trim(normalized, ".\"' ")
	switch normalized {
	case CategoryDisease, CategoryPest, CategoryManagement, CategoryGeneral, CategoryProblem:
		return normalized
	}
	return CategoryGeneral
}

func (o *Orchestrator) diagnoseAndRecommend(ctx context.Context, query string) *domain.AgentResponse {
	resp := domain.NewAgentResponse(query)

	diagnosis, diagSources := o.diagnose(ctx, query)
	recommendation, recSources, ok := o.recommend(ctx, query, diagnosis)
	if !ok {
		// recommendation stage degraded; fall back to plain composition
		fallback := o.composer.Answer(ctx, query)
		if diagnosis != "" {
			fallback.Response = "Diagnosis:\n" + diagnosis + "\n\nRecommendations:\n" + fallback.Response
			fallback.Workflow = append([]string{StageDiagnosis}, fallback.Workflow...)
			fallback.Sources = mergeSources(diagSources, fallback.Sources)
		}
		fallback.Workflow = append(fallback.Workflow, StageRAGFallback)
		return fallback
	}

	if diagnosis == "" {
		resp.Response = recommendation
		resp.Sources = recSources
		resp.Workflow = []string{StageRecommendation}
		return resp
	}

	resp.Response = "Diagnosis:\n" + diagnosis + "\n\nRecommendations:\n" + recommendation
	resp.Sources = mergeSources(diagSources, recSources)
	resp.Workflow = []string{StageDiagnosis, StageRecommendation}
	return resp
}

func (o *Orchestrator) recommendOnly(ctx context.Context, query string) *domain.AgentResponse {
	recommendation, sources, ok := o.recommend(ctx, query, "")
	if !ok {
		fallback := o.composer.Answer(ctx, query)
		fallback.Workflow = append(fallback.Workflow, StageRAGFallback)
		return fallback
	}

	resp := domain.NewAgentResponse(query)
	resp.Response = recommendation
	resp.Sources = sources
	resp.Workflow = []string{StageRecommendation}
	return resp
}

// diagnose produces a structured diagnosis from retrieved context. Empty
// context is tolerated; the prompt then asks for an explicitly uncertain
// diagnosis. A failure degrades to no diagnosis.
func (o *Orchestrator) diagnose(ctx context.Context, query string) (string, []domain.Source) {
	knowledgeCtx, sources, err := o.composer.Context(ctx, query)
	if err != nil {
		log.Printf("orchestrator: diagnosis context retrieval failed: %v", err)
		return "", nil
	}

	uncertainty := ""
	if knowledgeCtx == "" {
		knowledgeCtx = "(no matching knowledge found)"
		uncertainty = " There is no supporting context, so express your confidence as low and say the diagnosis is uncertain."
	}

	prompt := fmt.Sprintf(diagnosePromptTemplate, uncertainty, knowledgeCtx, query)
	diagnosis, err := o.llm.Complete(ctx, prompt, o.temperature, o.maxTokens)
	if err != nil {
		log.Printf("orchestrator: diagnosis failed, continuing without it: %v", err)
		return "", nil
	}

	return strings.TrimSpace(diagnosis), sources
}

// recommend produces actionable recommendations, optionally chained after a
// diagnosis. The bool result is false when the stage could not produce text.
func (o *Orchestrator) recommend(ctx context.Context, query, diagnosis string) (string, []domain.Source, bool) {
	knowledgeCtx, sources, err := o.composer.Context(ctx, query)
	if err != nil {
		log.Printf("orchestrator: recommendation context retrieval failed: %v", err)
		return "", nil, false
	}
	if knowledgeCtx == "" {
		knowledgeCtx = "(no matching knowledge found)"
	}

	diagnosisLead := ""
	diagnosisBlock := ""
	if diagnosis != "" {
		diagnosisLead = " and the diagnosis"
		diagnosisBlock = "\nDiagnosis:\n" + diagnosis + "\n"
	}

	prompt := fmt.Sprintf(recommendPromptTemplate, diagnosisLead, knowledgeCtx, diagnosisBlock, query)
	recommendation, err := o.llm.Complete(ctx, prompt, o.temperature, o.maxTokens)
	if err != nil {
		log.Printf("orchestrator: recommendation failed: %v", err)
		return "", nil, false
	}

	return strings.TrimSpace(recommendation), sources, true
}

// verify runs a final review pass over the composed response. It is skipped
// when the response already signals an error or apology. A verification
// failure keeps the unverified response, flags it, and records the reason.
func (o *Orchestrator) verify(ctx context.Context, query string, resp *domain.AgentResponse) {
	lower := strings.ToLower(resp.Response)
	if strings.Contains(lower, "error") || strings.Contains(lower, "apologize") {
		return
	}

	resp.Workflow = append(resp.Workflow, StageVerification)

	prompt := fmt.Sprintf(verifyPromptTemplate, query, resp.Response)
	reviewed, err := o.llm.Complete(ctx, prompt, o.temperature, o.maxTokens)
	if err != nil {
		verified := false
		resp.Verified = &verified
		resp.VerificationError = err.Error()
		return
	}

	if text := strings.TrimSpace(reviewed); text != "" {
		resp.Response = text
	}
	verified := true
	resp.Verified = &verified
}

// mergeSources concatenates source lists, removing duplicates keyed on a
// content-prefix fingerprint and preserving first-seen order.
func mergeSources(lists ...[]domain.Source) []domain.Source {
	seen := make(map[string]struct{})
	out := make([]domain.Source, 0)
	for _, list := range lists {
		for _, src := range list {
			key := sourceFingerprint(src)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, src)
		}
	}
	return out
}

func sourceFingerprint(src domain.Source) string {
	content := src.Excerpt
	if content == "" {
		content = src.Title
	}
	runes := []rune(content)
	if len(runes) > sourceFingerprintChars {
		runes = runes[:sourceFingerprintChars]
	}
	return strings.ToLower(string(runes))
}

func errorResponse(query string) *domain.AgentResponse {
	resp := domain.NewAgentResponse(query)
	resp.Response = "I apologize, but I encountered an unexpected error processing your question. Please try again."
	resp.Workflow = []string{StageError}
	return resp
}
