package models

// RecommendRequest carries the free-text prompt sent to the tutor
// recommendation endpoint. Any prompt is accepted, including an empty
// one; the placeholder engine answers unconditionally.
type RecommendRequest struct {
	Prompt string `json:"prompt"`
}

// RecommendResponse is the placeholder answer: the engine is not wired
// yet, so the tutor list is always empty.
type RecommendResponse struct {
	Message           string   `json:"message"`
	PromptReceived    string   `json:"prompt_received"`
	RecommendedTutors []string `json:"recommended_tutors"`
}
