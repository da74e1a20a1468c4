package models

// AskRequest is the body of POST /ask.
type AskRequest struct {
	Question string `json:"question" binding:"required"`
}

// AskResponse forwards the RAG engine's answer verbatim, renaming the
// engine's openai_cost to estimated_cost on the way out.
type AskResponse struct {
	ConversationID string      `json:"conversation_id"`
	Answer         string      `json:"answer"`
	Relevance      interface{} `json:"relevance"`
	ResponseTime   float64     `json:"response_time"`
	TotalTokens    int         `json:"total_tokens"`
	EstimatedCost  float64     `json:"estimated_cost"`
}

// FeedbackRequest is the body of POST /feedback. Feedback is a pointer so
// that an explicit 0 survives binding and gets rejected with the proper
// validation message instead of a bind error.
type FeedbackRequest struct {
	Feedback *int `json:"feedback" binding:"required"`
}

// FeedbackResponse is the success body of POST /feedback.
type FeedbackResponse struct {
	Message string `json:"message"`
}
