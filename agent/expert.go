package agent

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"google.golang.org/genai"
)

// questionArg is the single parameter every expert accepts.
const questionArg = "question"

// Expert is one specialized chat: a model, a system instruction, and
// optionally a library of functions it can call.
type Expert struct {
	Name        string
	Description string
	ModelName   string
	Config      *genai.GenerateContentConfig
	Library     Library
	chat        *genai.Chat
}

// Start opens the expert's chat. An expert answers nothing before Start.
func (e *Expert) Start(ctx context.Context, client *genai.Client) error {
	chat, err := client.Chats.Create(ctx, e.ModelName, e.Config, nil)
	if err != nil {
		return err
	}
	e.chat = chat
	return nil
}

// Ask sends the parts and resolves function calls through the expert's
// library until a text response comes back.
func (e *Expert) Ask(ctx context.Context, parts ...*genai.Part) (*genai.Content, error) {
	for {
		resp, err := e.chat.Send(ctx, parts...)
		if err != nil {
			return nil, err
		}
		if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
			return nil, fmt.Errorf("no response from expert %s", e.Name)
		}
		content := resp.Candidates[0].Content
		call := content.Parts[0].FunctionCall
		if call == nil {
			return content, nil
		}
		if e.Library == nil {
			return nil, fmt.Errorf("expert %s doesn't know how to make function calls", e.Name)
		}
		// Errors travel inside the response; feed it back until the expert
		// settles on text.
		parts = []*genai.Part{{FunctionResponse: e.Library(ctx, call)}}
	}
}

// Declaration exposes the expert itself as a callable function, the way the
// facilitator consults it.
func (e *Expert) Declaration() *genai.FunctionDeclaration {
	question := &genai.Schema{
		Type:        genai.TypeString,
		Description: "The question to ask the expert.",
	}
	return &genai.FunctionDeclaration{
		Name:        e.Name,
		Description: e.Description,
		Parameters: &genai.Schema{
			Type:       genai.TypeObject,
			Properties: map[string]*genai.Schema{questionArg: question},
			Required:   []string{questionArg},
		},
		Response: &genai.Schema{
			Type:        genai.TypeString,
			Description: "Expert's response.",
		},
	}
}

// Call answers a facilitator's function call by asking this expert.
func (e *Expert) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	fail := func(format string, a ...any) *genai.FunctionResponse {
		return &genai.FunctionResponse{
			ID:       id,
			Name:     e.Name,
			Response: map[string]any{"error": fmt.Sprintf(format, a...)},
		}
	}

	question, ok := args[questionArg].(string)
	if !ok {
		return fail("invalid type got %T, expected string", args[questionArg])
	}

	answer, err := e.Ask(ctx, &genai.Part{Text: question})
	if err != nil {
		return fail("asking expert %s: %v", e.Name, err)
	}

	text := answer.Parts[0].Text
	log.Debug().Str("expert", e.Name).Str("question", question).Str("answer", text).Msg("expert consulted")
	return &genai.FunctionResponse{
		ID:       id,
		Name:     e.Name,
		Response: map[string]any{"output": text},
	}
}
