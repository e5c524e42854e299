package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/Cyclone1070/sandboxagent/internal/workflow"
)

// Console prints workflow progress and the final answer.
// Quiet mode shows only the names of called functions.
type Console struct {
	out      io.Writer
	verbose  bool
	markdown *MarkdownRenderer

	// pending holds model text until it is known not to be the final answer.
	pending string
}

// NewConsole creates a Console. markdown may be nil for plain output.
func NewConsole(out io.Writer, verbose bool, markdown *MarkdownRenderer) *Console {
	return &Console{out: out, verbose: verbose, markdown: markdown}
}

func (c *Console) Prompt(prompt string) {
	if c.verbose {
		fmt.Fprintln(c.out, PromptStyle.Render("User prompt:")+" "+prompt)
	}
}

// Consume prints events until the channel is closed.
func (c *Console) Consume(events <-chan workflow.Event) {
	for e := range events {
		c.Handle(e)
	}
}

func (c *Console) Handle(e workflow.Event) {
	for _, line := range c.lines(e) {
		fmt.Fprintln(c.out, line)
	}
}

// lines formats one event. Model text is only shown once a tool call or a
// further round follows it; the text of the last reply is the answer.
func (c *Console) lines(e workflow.Event) []string {
	var out []string

	switch ev := e.(type) {
	case workflow.TextEvent:
		if c.verbose {
			c.pending = ev.Text
		}
		return nil
	case workflow.DoneEvent:
		c.pending = ""
		return nil
	case workflow.ThinkingEvent, workflow.ToolStartEvent:
		if c.pending != "" {
			out = append(out, TextStyle.Render("Model:")+" "+c.pending)
			c.pending = ""
		}
	}

	switch ev := e.(type) {
	case workflow.ToolStartEvent:
		call := ev.ToolName
		if c.verbose {
			call = FormatCall(ev.ToolName, ev.Args)
		}
		out = append(out, CallStyle.Render("- Calling function:")+" "+call)
	case workflow.ToolEndEvent:
		if !c.verbose {
			return out
		}
		style := ResultStyle
		if ev.Failed {
			style = FailureStyle
		}
		out = append(out, style.Render("->")+" "+ev.Output)
	case workflow.UsageEvent:
		if !c.verbose {
			return out
		}
		out = append(out,
			UsageStyle.Render(fmt.Sprintf("Prompt tokens: %d", ev.PromptTokens)),
			UsageStyle.Render(fmt.Sprintf("Response tokens: %d", ev.ResponseTokens)),
		)
	}
	return out
}

// Answer prints the model's final text. Blank answers print nothing.
func (c *Console) Answer(text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	fmt.Fprintln(c.out, "Final response:")
	rendered := c.markdown.Render(text)
	fmt.Fprint(c.out, rendered)
	if !strings.HasSuffix(rendered, "\n") {
		fmt.Fprintln(c.out)
	}
}

func (c *Console) Error(msg string) {
	fmt.Fprintln(c.out, ErrorStyle.Render(msg))
}
