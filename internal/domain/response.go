package domain

// Source records the provenance of a passage used to ground an answer.
type Source struct {
	Title    string `json:"title"`
	Category string `json:"category"`
	Excerpt  string `json:"excerpt,omitempty"`
}

// AgentResponse is the unit passed between pipeline stages and returned to the
// caller. Created fresh per question; never persisted.
type AgentResponse struct {
	Response          string   `json:"response"`
	Sources           []Source `json:"sources"`
	Query             string   `json:"query"`
	Workflow          []string `json:"agent_workflow"`
	Verified          *bool    `json:"verified,omitempty"`
	VerificationError string   `json:"verification_error,omitempty"`
}

// NewAgentResponse creates a response for the given query with an empty,
// non-nil sources list.
func NewAgentResponse(query string) *AgentResponse {
	return &AgentResponse{
		Query:   query,
		Sources: []Source{},
	}
}
