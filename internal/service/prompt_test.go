package service

import (
	"strings"
	"testing"

	"guardian-portal-go/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComposePrompt_StrictModeWhenContentMatched(t *testing.T) {
	matched := MatchResult{Content: []model.ContentItem{gateCodeItem()}}

	prompt := ComposePrompt("whats the gate code", matched, "", []string{"Home"})

	assert.Equal(t, ModeStrict, prompt.Mode)
	assert.Contains(t, prompt.System, "• Gate Code: 4521")
	assert.Contains(t, prompt.System, "VERIFIED INFORMATION FROM DATABASE:")
	assert.Contains(t, prompt.System, "Do NOT make up, guess, or invent any details like passwords, names, codes, or numbers.")
	assert.Equal(t, "whats the gate code", prompt.User)
}

func TestComposePrompt_StrictModeWhenOnlyCategoryMatched(t *testing.T) {
	matched := MatchResult{Categories: []model.Category{{Name: "Medical", Description: "doctor info"}}}

	prompt := ComposePrompt("medical stuff", matched, "", nil)

	assert.Equal(t, ModeStrict, prompt.Mode)
	assert.Contains(t, prompt.System, "• Medical: doctor info")
}

func TestComposePrompt_StrictModeListsOnlyMatchedFacts(t *testing.T) {
	matched := MatchResult{Content: []model.ContentItem{gateCodeItem()}}

	prompt := ComposePrompt("whats the gate code", matched, "", []string{"Wifi", "Medical"})

	// Unmatched knowledge must never leak into the strict instruction.
	assert.NotContains(t, prompt.System, "Wifi")
	assert.NotContains(t, prompt.System, "Medical")
}

func TestComposePrompt_OpenModeWhenNothingMatched(t *testing.T) {
	prompt := ComposePrompt("hello there", MatchResult{}, "", []string{"Medical"})

	assert.Equal(t, ModeOpen, prompt.Mode)
	assert.Contains(t, prompt.System, "Available categories in the family database: Medical")
	assert.Contains(t, prompt.System, "doesn't have specific stored information")
	assert.Contains(t, prompt.System, "passwords, codes, addresses, phone numbers")
	assert.NotContains(t, prompt.System, "VERIFIED INFORMATION FROM DATABASE:")
	assert.Equal(t, "hello there", prompt.User)
}

func TestComposePrompt_OpenModeNoCategories(t *testing.T) {
	prompt := ComposePrompt("hello", MatchResult{}, "", nil)

	assert.Contains(t, prompt.System, "Available categories in the family database: None yet")
}

func TestComposePrompt_OpenModeDedupesCategoryNames(t *testing.T) {
	prompt := ComposePrompt("hello", MatchResult{}, "", []string{"Medical", "", "Medical", "Home"})

	assert.Contains(t, prompt.System, "Available categories in the family database: Medical, Home")
	assert.Equal(t, 1, strings.Count(prompt.System, "Medical"))
}

func TestComposePrompt_DefaultToneApplied(t *testing.T) {
	strict := ComposePrompt("gate", MatchResult{Content: []model.ContentItem{gateCodeItem()}}, "   ", nil)
	open := ComposePrompt("hello", MatchResult{}, "", nil)

	assert.Contains(t, strict.System, DefaultToneGuidance)
	assert.Contains(t, open.System, DefaultToneGuidance)
}

func TestComposePrompt_CaregiverToneInjectedVerbatim(t *testing.T) {
	tone := "Always call the recipient 'Grandma June' and keep answers cheerful."

	prompt := ComposePrompt("hello", MatchResult{}, tone, nil)

	assert.Contains(t, prompt.System, tone)
	assert.NotContains(t, prompt.System, DefaultToneGuidance)
}

func TestComposePrompt_UserMessagePassedVerbatim(t *testing.T) {
	message := "  WHATS The GATE code??  "
	matched := MatchResult{Content: []model.ContentItem{gateCodeItem()}}

	prompt := ComposePrompt(message, matched, "", nil)

	// The model sees exactly what the recipient typed, unnormalized.
	assert.Equal(t, message, prompt.User)
}

func TestComposePrompt_StrictRendersContentThenCategories(t *testing.T) {
	matched := MatchResult{
		Content:    []model.ContentItem{gateCodeItem()},
		Categories: []model.Category{{Name: "Home", Description: "house details"}},
	}

	prompt := ComposePrompt("gate code home", matched, "", nil)

	gateIdx := strings.Index(prompt.System, "• Gate Code: 4521")
	homeIdx := strings.Index(prompt.System, "• Home: house details")
	require.GreaterOrEqual(t, gateIdx, 0)
	require.GreaterOrEqual(t, homeIdx, 0)
	assert.Less(t, gateIdx, homeIdx)
}
