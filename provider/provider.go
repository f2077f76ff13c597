// Package provider abstracts the generative-AI chat service behind a small
// interface so handlers and tests never touch the OpenAI client directly.
package provider

import "context"

// ChatMessage is a single chat message with role and content.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the input for one chat turn.
type ChatRequest struct {
	Messages []ChatMessage
}

// ChatResponse is the assistant's reply.
type ChatResponse struct {
	Text string
}

// ChatProvider defines the chat completion contract.
type ChatProvider interface {
	Chat(ctx context.Context, req *ChatRequest) (*ChatResponse, error)
}
