package rag

// Request models
type answerRequest struct {
	Question string `json:"question"`
}

// Answer is the RAG service's verdict on one question. Relevance is left
// untyped because the service reports either a label ("RELEVANT") or a
// numeric score depending on its evaluation mode; the gateway forwards it
// untouched either way.
type Answer struct {
	ID           string      `json:"id"`
	Answer       string      `json:"answer"`
	Relevance    interface{} `json:"relevance"`
	ResponseTime float64     `json:"response_time"`
	TotalTokens  int         `json:"total_tokens"`
	OpenAICost   float64     `json:"openai_cost"`
}
