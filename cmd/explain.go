package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/bondyield"
	"github.com/etnz/bondyield/renderer"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

// explainCmd asks a model for a commentary of the attribution summary.
type explainCmd struct {
	reportFlags
	by string
}

func (*explainCmd) Name() string     { return "explain" }
func (*explainCmd) Synopsis() string { return "narrative commentary of the attribution summary" }
func (*explainCmd) Usage() string {
	return `fia explain [-p <period> | -s <date>] [-e <date>] [-scope all|bonds|cds] [-by class] [question...]

  Sends the attribution summary of the range to the configured Gemini model and
  prints its commentary. The API key is read from GOOGLE_API_KEY.
`
}

func (c *explainCmd) SetFlags(f *flag.FlagSet) {
	c.reportFlags.SetFlags(f)
	f.StringVar(&c.by, "by", "class", "Grouping of the summary sent to the model")
}

const analystInstruction = `
You are a fixed income analyst commenting on the yield attribution of a bond book.
Figures come as markdown tables: interest accrued, realized capital gains, mark-to-market
and the annualized yield on capital occupied. Explain in a few short paragraphs which
groups drove the return and whether it came from carry, trading or valuation.
Only use the figures given, never invent any.`

// explainPrompt builds the user prompt from the report tables and an optional question.
func explainPrompt(rep *bondyield.Report, by bondyield.GroupKey, question string) string {
	var b strings.Builder
	b.WriteString(renderer.SummaryMarkdown(rep, by))
	b.WriteString("\n")
	b.WriteString(renderer.MonthlyMarkdown(rep))
	if question != "" {
		fmt.Fprintf(&b, "\nQuestion: %s\n", question)
	}
	return b.String()
}

func (c *explainCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	by, err := bondyield.ParseGroupKey(c.by)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	rep, status := c.run(ctx)
	if rep == nil {
		return status
	}
	if rep.Empty() {
		fmt.Fprintln(os.Stderr, "Nothing to explain: no instrument held in", rep.Range())
		return subcommands.ExitSuccess
	}

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}
	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: analystInstruction}}},
	}
	chat, err := client.Chats.Create(ctx, c.cfg.Assist.Model, config, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error starting the chat:", err)
		return subcommands.ExitFailure
	}
	resp, err := chat.Send(ctx, &genai.Part{Text: explainPrompt(rep, by, strings.Join(f.Args(), " "))})
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error asking the model:", err)
		return subcommands.ExitFailure
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		fmt.Fprintln(os.Stderr, "No response from the model")
		return subcommands.ExitFailure
	}
	var md strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		md.WriteString(p.Text)
	}
	printMarkdown(md.String(), c.raw)
	return subcommands.ExitSuccess
}
