package categorize

import (
	"fmt"
	"strings"
)

const (
	strictReminder = "Remember: ONLY use the exact category names from the provided service categories list. " +
		"DO NOT create new categories that are not in the list. If no category matches exactly, use '%s'."
	semanticReminder = "Remember: Use semantic understanding to match descriptions to appropriate categories. " +
		"Consider the intent and meaning of the description, not just exact keywords. " +
		"Only use '%s' when no category reasonably fits the description's intent."
)

// BuildPrompt assembles the categorization prompt for one work order
// description.
func BuildPrompt(p *Profile, description string) string {
	var b strings.Builder
	if p.Prompt() != "" {
		b.WriteString(strings.TrimSpace(p.Prompt()))
	} else {
		writeDefaultPrompt(&b, p)
	}

	b.WriteString("\n\n")
	if p.Matching() == MatchingSemantic {
		fmt.Fprintf(&b, semanticReminder, p.CatchAll())
	} else {
		fmt.Fprintf(&b, strictReminder, p.CatchAll())
	}

	b.WriteString("\n\nInput: ")
	b.WriteString(description)
	return b.String()
}

func writeDefaultPrompt(b *strings.Builder, p *Profile) {
	fmt.Fprintf(b, "You categorize the services described in a %s work order.\n\n", p.Name())
	b.WriteString("Service categories:\n")
	for _, label := range p.Taxonomy() {
		b.WriteString("- ")
		b.WriteString(label)
		b.WriteString("\n")
	}
	b.WriteString("\nFor every distinct service in the description, output one block:\n")
	b.WriteString("Service: <category>\n")
	b.WriteString("Blocks/Lots/Units: <locations, or Not specified>\n\n")
	b.WriteString("Separate blocks with a blank line. Output nothing else.")
}
