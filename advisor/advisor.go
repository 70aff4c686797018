// Package advisor implements the AI spending advisor: a chat session grounded
// in the user's own transaction data.
package advisor

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"google.golang.org/genai"

	"github.com/etnz/tracker"
	"github.com/etnz/tracker/renderer"
)

// DefaultModel is the model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

const systemPrompt = `You are a personal finance advisor. The user's recorded
spending is given below as markdown reports. Answer questions about their
spending habits, point out categories that stand out, and suggest concrete,
modest improvements. Keep answers short. Amounts are in the user's base
currency. Never invent transactions that are not in the reports.`

// Advisor is a chat session with the spending advisor.
type Advisor struct {
	w     io.Writer
	r     *bufio.Reader
	model string
	chat  *genai.Chat
}

// New creates an Advisor writing its output to w and reading user input from
// r. An empty model selects DefaultModel.
func New(w io.Writer, r io.Reader, model string) *Advisor {
	if model == "" {
		model = DefaultModel
	}
	return &Advisor{w: w, r: bufio.NewReader(r), model: model}
}

// Briefing renders the spending context handed to the model: the statistics
// report plus the transaction list.
func Briefing(stats tracker.Statistics, txs []tracker.Transaction, on tracker.Date) string {
	var b strings.Builder
	b.WriteString(renderer.RenderStats(renderer.NewStats(stats, on)))
	b.WriteString("\n")
	b.WriteString(renderer.RenderTransactions(renderer.NewTransactionList(txs, tracker.Pattern{})))
	return b.String()
}

// Start opens the chat session, seeding it with the briefing.
func (a *Advisor) Start(ctx context.Context, client *genai.Client, briefing string) error {
	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: systemPrompt + "\n\n" + briefing}},
		},
	}
	chat, err := client.Chats.Create(ctx, a.model, config, nil)
	if err != nil {
		return fmt.Errorf("cannot start advisor chat: %w", err)
	}
	a.chat = chat
	return nil
}

// Ask sends one question and returns the advisor's answer.
func (a *Advisor) Ask(ctx context.Context, question string) (string, error) {
	resp, err := a.chat.Send(ctx, &genai.Part{Text: question})
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from the advisor")
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}

const prompt = "advisor> "

// Run starts the interactive session. Initial prompts, if any, are consumed
// before reading from the user; "bye" or EOF ends the session cleanly.
func (a *Advisor) Run(ctx context.Context, client *genai.Client, briefing string, prompts ...string) error {
	if a.chat == nil {
		if err := a.Start(ctx, client, briefing); err != nil {
			return err
		}
	}

	fmt.Fprintln(a.w, "Welcome to the pft spending advisor. Type 'bye' to exit.")
	for {
		fmt.Fprint(a.w, prompt)

		var input string
		if len(prompts) > 0 {
			input, prompts = prompts[0], prompts[1:]
			input = strings.TrimSpace(input)
			if input == "" {
				continue
			}
			fmt.Fprintln(a.w, input)
		} else {
			var err error
			input, err = a.r.ReadString('\n')
			if err != nil {
				if err == io.EOF {
					return nil
				}
				return err
			}
		}

		if strings.TrimSpace(input) == "bye" {
			return nil
		}

		answer, err := a.Ask(ctx, strings.TrimSpace(input))
		if err != nil {
			return err
		}
		fmt.Fprintln(a.w, answer)
	}
}
