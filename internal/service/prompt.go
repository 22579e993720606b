package service

import (
	"fmt"
	"strings"
)

// PromptMode selects between the two response modes. Strict mode restricts
// the model to verified stored facts; open mode allows general answers while
// keeping the ban on fabricating personal data. The split is the safety
// boundary of the whole system and must not be collapsed.
type PromptMode int

const (
	// ModeStrict grounds the reply in matched knowledge only.
	ModeStrict PromptMode = iota
	// ModeOpen permits general-knowledge answers with the fabrication ban.
	ModeOpen
)

// Prompt is one composed model invocation: the system instruction and the
// recipient's message, passed through verbatim.
type Prompt struct {
	Mode   PromptMode
	System string
	User   string
}

// DefaultToneGuidance applies when a caregiver has not configured any tone.
const DefaultToneGuidance = "Be helpful, warm, and patient. Use simple language."

// ComposePrompt builds the model instruction for one inbound message. Strict
// mode is selected whenever anything matched; otherwise open mode lists the
// known category names so the recipient learns what can be asked.
func ComposePrompt(message string, matched MatchResult, toneGuidance string, allCategoryNames []string) Prompt {
	tone := strings.TrimSpace(toneGuidance)
	if tone == "" {
		tone = DefaultToneGuidance
	}

	if matched.HasMatches() {
		return Prompt{
			Mode:   ModeStrict,
			System: strictInstruction(matched, tone),
			User:   message,
		}
	}
	return Prompt{
		Mode:   ModeOpen,
		System: openInstruction(allCategoryNames, tone),
		User:   message,
	}
}

// strictInstruction renders the grounded template: the matched facts plus a
// hard prohibition on inventing values not present in them.
func strictInstruction(matched MatchResult, tone string) string {
	var context strings.Builder
	for _, item := range matched.Content {
		if context.Len() > 0 {
			context.WriteString("\n")
		}
		context.WriteString(fmt.Sprintf("• %s: %s", item.Title, item.Description))
	}
	for _, category := range matched.Categories {
		if context.Len() > 0 {
			context.WriteString("\n")
		}
		context.WriteString(fmt.Sprintf("• %s: %s", category.Name, category.Description))
	}

	return fmt.Sprintf(`You are a helpful Guardian assistant. %s

IMPORTANT: You MUST only use the information provided below. Do NOT make up, guess, or invent any details like passwords, names, codes, or numbers.

VERIFIED INFORMATION FROM DATABASE:
%s

Respond naturally using ONLY the verified information above. Keep it brief - this is SMS.`, tone, context.String())
}

// openInstruction renders the fallback template: no stored record matched,
// general answers are allowed, fabricating specific personal data is not.
func openInstruction(allCategoryNames []string, tone string) string {
	names := dedupeNames(allCategoryNames)
	available := strings.Join(names, ", ")
	if available == "" {
		available = "None yet"
	}

	return fmt.Sprintf(`You are a helpful Guardian assistant. %s

The user is asking about something that doesn't have specific stored information in the family database.

Available categories in the family database: %s

You CAN answer general questions helpfully using your knowledge. Be conversational and helpful!

However, if they ask for SPECIFIC personal info (like passwords, codes, addresses, phone numbers) that you don't have, kindly let them know that info isn't stored yet and suggest they ask a family member to add it.

Keep responses brief and friendly - this is SMS.`, tone, available)
}

func dedupeNames(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	var out []string
	for _, name := range names {
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}
