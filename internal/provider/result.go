// Package provider holds the structured results shared between external
// gateway adapters and the services that consume them.
package provider

// Agent highlight categories.
const (
	CategoryWord       = "word"
	CategoryExpression = "expression"
)

// AgentHighlight is one vocabulary item returned by an analysis agent.
type AgentHighlight struct {
	Highlight    string   `json:"highlight"`
	Category     string   `json:"category"`
	Translation  string   `json:"translation"`
	Examples     []string `json:"examples"`
	Collocations []string `json:"collocations"`
}

// DistractorSet is the wrong-option payload returned by a distractor agent
// for one test word.
type DistractorSet struct {
	Word         string   `json:"word"`
	WrongOptions []string `json:"wrong_options"`
}

// DistractorResponse is the envelope a distractor agent wraps its sets in.
type DistractorResponse struct {
	Tests []DistractorSet `json:"tests"`
}
