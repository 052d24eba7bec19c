package agent

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// Library resolves a model's function call into its response. It is the only
// bridge between a chat and the Go side.
type Library func(context.Context, *genai.FunctionCall) *genai.FunctionResponse

// Function is one callable the model can reach: its declaration for the tool
// config, and the Go code behind it.
type Function interface {
	Declaration() *genai.FunctionDeclaration
	Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse
}

// NewLibrary builds a Library dispatching calls by declared name. An unknown
// name travels back to the model as an error response, never as a Go error,
// so the model has a chance to correct itself.
func NewLibrary[T Function](functions []T) Library {
	return func(ctx context.Context, call *genai.FunctionCall) *genai.FunctionResponse {
		for _, f := range functions {
			if f.Declaration().Name == call.Name {
				return f.Call(ctx, call.ID, call.Args)
			}
		}
		return &genai.FunctionResponse{
			ID:   call.ID,
			Name: call.Name,
			Response: map[string]any{
				"error": fmt.Sprintf("unknown function %s", call.Name),
			},
		}
	}
}

// NewDeclaration collects the declarations of a set of functions, the shape
// the tool config wants them in.
func NewDeclaration[T Function](functions []T) []*genai.FunctionDeclaration {
	declarations := make([]*genai.FunctionDeclaration, 0, len(functions))
	for _, f := range functions {
		declarations = append(declarations, f.Declaration())
	}
	return declarations
}
