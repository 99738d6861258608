package models

// ChatRequest is the payload sent to the chat endpoint and the proxy.
type ChatRequest struct {
	Message string `json:"message" validate:"min=1,max=1000,notblank"`
}

// ChatResponse is the reply generated by the provider.
type ChatResponse struct {
	Reply string `json:"reply"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
