package agent

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"google.golang.org/genai"
)

// Agent runs the interactive assist session: a facilitator model in front of
// a team of experts, each expert reachable as a function call.
type Agent struct {
	out         io.Writer
	in          *bufio.Reader
	Facilitator *Expert
	Experts     []*Expert
}

// New assembles an agent over a team of experts. The facilitator owns the
// conversation and consults the experts through function calls; the experts
// keep the context of their previous answers across the session.
func New(w io.Writer, r io.Reader, experts ...*Expert) *Agent {
	return &Agent{
		out:         w,
		in:          bufio.NewReader(r),
		Experts:     experts,
		Facilitator: newFacilitator(experts...),
	}
}

// Start opens one chat per expert, the facilitator last.
func (a *Agent) Start(ctx context.Context, client *genai.Client) error {
	for _, e := range a.Experts {
		if err := e.Start(ctx, client); err != nil {
			return fmt.Errorf("starting expert %s: %w", e.Name, err)
		}
	}
	return a.Facilitator.Start(ctx, client)
}

const prompt = "assist> "

// Run is the session REPL. Initial prompts are consumed before reading from
// the user, so a question can be asked straight from the command line.
// Typing "bye" or closing the input ends the session.
func (a *Agent) Run(ctx context.Context, client *genai.Client, prompts ...string) error {
	if a.Facilitator.chat == nil {
		if err := a.Start(ctx, client); err != nil {
			return err
		}
	}

	fmt.Fprintln(a.out, "Welcome to tla assist. Type 'bye' to exit.")
	for {
		fmt.Fprint(a.out, prompt)

		input, err := a.next(&prompts)
		if err != nil {
			if err == io.EOF {
				return nil // Clean exit on Ctrl+D.
			}
			return err
		}
		switch input {
		case "":
			continue
		case "bye":
			return nil
		}

		content, err := a.Facilitator.Ask(ctx, &genai.Part{Text: input})
		if err != nil {
			return err
		}
		fmt.Fprintln(a.out, content.Parts[0].Text)
	}
}

// next pops the pending command line prompts first, then reads a line from
// the user. Popped prompts are echoed so the transcript reads like a
// session.
func (a *Agent) next(prompts *[]string) (string, error) {
	if len(*prompts) > 0 {
		input := strings.TrimSpace((*prompts)[0])
		*prompts = (*prompts)[1:]
		if input != "" {
			fmt.Fprintln(a.out, input)
		}
		return input, nil
	}
	line, err := a.in.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
