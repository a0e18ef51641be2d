package improve

// Request represents the request body for prompt improvement
type Request struct {
	Prompt string `json:"prompt"`
}

// Response represents the response for prompt improvement
type Response struct {
	ImprovedPrompt string `json:"improved_prompt"`
}
