package ai

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/johnquangdev/joyability/pkg/jobcontext"
)

// Summary templates understood by Summarize. Anything else gets a generic summary.
const (
	TemplateSalesCall = "Sales Call Template"
	TemplateMeeting   = "Meeting Notes"
	TemplateInterview = "Interview"
)

// SummaryFallback is returned when the model produced no summary text.
const SummaryFallback = "Summary generation failed."

const (
	translatePrompt = `Translate the following text. If it is in Hebrew, translate to English. If it is in English, translate to Hebrew. Only return the translated text. Text: "%s"`
	grammarPrompt   = `Fix the grammar and spelling of the following text. Keep the tone natural and professional. Return only the corrected text. Text: "%s"`
	nikudPrompt     = `Add Hebrew Nikud (vowels) to the following Hebrew text. Be accurate. Return only the text with Nikud. Text: "%s"`
	summaryPrompt   = "%s\n\nTranscript:\n%s"
)

var summaryInstructions = map[string]string{
	TemplateSalesCall: "Analyze the transcript. Create a Hebrew summary (unless content is purely English). Markdown format: Call Details, Objective, Key Points, Pain Points, Action Items, Deal Status.",
	TemplateMeeting:   "Summarize meeting in Hebrew (or English if appropriate). Markdown format: Attendees, Agenda, Decisions, Follow-up Tasks.",
	TemplateInterview: "Summarize interview. Markdown format: Candidate Name, Strengths, Weaknesses, Recommendation.",
}

const genericSummaryInstruction = "Summarize the transcript in professional Markdown."

// SummaryTemplates lists the named templates in display order
func SummaryTemplates() []string {
	return []string{TemplateSalesCall, TemplateMeeting, TemplateInterview}
}

// Translate swaps Hebrew and English
func (c *Client) Translate(ctx context.Context, text string) (string, error) {
	return c.textOp(ctx, "translate", fmt.Sprintf(translatePrompt, text))
}

// FixGrammar corrects grammar and spelling
func (c *Client) FixGrammar(ctx context.Context, text string) (string, error) {
	return c.textOp(ctx, "grammar", fmt.Sprintf(grammarPrompt, text))
}

// AddNikud adds Hebrew vowel marks
func (c *Client) AddNikud(ctx context.Context, text string) (string, error) {
	return c.textOp(ctx, "nikud", fmt.Sprintf(nikudPrompt, text))
}

// Summarize produces a Markdown summary of transcript following the named template
func (c *Client) Summarize(ctx context.Context, transcript, template string) (string, error) {
	instruction, ok := summaryInstructions[template]
	if !ok {
		instruction = genericSummaryInstruction
	}
	out, err := c.textOp(ctx, "summary", fmt.Sprintf(summaryPrompt, instruction, transcript))
	if err != nil {
		return "", err
	}
	if out == "" {
		return SummaryFallback, nil
	}
	return out, nil
}

func (c *Client) textOp(ctx context.Context, op, prompt string) (string, error) {
	ctx = jobcontext.JobBegin(ctx, op)

	out, err := c.generateText(ctx, c.cfg.ModelFlash, prompt)
	if err != nil {
		c.logger.Error("❌ Text operation failed", append(jobcontext.Fields(ctx), zap.Error(err))...)
		return "", err
	}

	c.logger.Debug("✅ Text operation completed",
		append(jobcontext.Fields(ctx), zap.Int("output_length", len(out)))...)
	return out, nil
}
