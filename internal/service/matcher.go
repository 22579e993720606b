// Package service contains the application business logic.
package service

import (
	"strings"

	"guardian-portal-go/internal/model"
)

// MatchResult holds the knowledge judged relevant to one inbound message.
// Content and Categories are tracked separately and combined downstream.
type MatchResult struct {
	Content    []model.ContentItem
	Categories []model.Category
}

// HasMatches reports whether any content item or category matched.
func (m MatchResult) HasMatches() bool {
	return len(m.Content) > 0 || len(m.Categories) > 0
}

// MatchKnowledge filters an account's knowledge set down to the entries
// relevant to message. Matching is case-insensitive substring containment,
// deliberately recall-heavy: every qualifying entry is returned, unranked,
// because the composer constrains the model to the returned facts anyway.
//
// A content item matches when its title appears in the message, when a
// keyword and the message contain each other in either direction, or when its
// description contains a message word. A category matches on name containment
// or a description word hit; the reverse keyword-style check intentionally
// does not apply to categories.
func MatchKnowledge(message string, items []model.ContentItem, categories []model.Category) MatchResult {
	var result MatchResult

	lowerMessage := strings.ToLower(message)
	if strings.TrimSpace(lowerMessage) == "" {
		return result
	}
	messageWords := significantWords(lowerMessage)

	for _, item := range items {
		// Title is mandatory; an item without one is malformed upstream data
		// and is skipped rather than treated as an error.
		if item.Title == "" {
			continue
		}

		if strings.Contains(lowerMessage, strings.ToLower(item.Title)) {
			result.Content = append(result.Content, item)
			continue
		}
		if keywordsMatch(lowerMessage, messageWords, item.Keywords) {
			result.Content = append(result.Content, item)
			continue
		}
		if containsAnyWord(strings.ToLower(item.Description), messageWords) {
			result.Content = append(result.Content, item)
		}
	}

	for _, category := range categories {
		name := strings.TrimSpace(strings.ToLower(category.Name))
		if name != "" && strings.Contains(lowerMessage, name) {
			result.Categories = append(result.Categories, category)
			continue
		}
		if containsAnyWord(strings.ToLower(category.Description), messageWords) {
			result.Categories = append(result.Categories, category)
		}
	}

	return result
}

// significantWords tokenizes by whitespace and drops short stop-word-like
// tokens to reduce false positives.
func significantWords(lowerMessage string) []string {
	var words []string
	for _, word := range strings.Fields(lowerMessage) {
		if len(word) > 2 {
			words = append(words, word)
		}
	}
	return words
}

// keywordsMatch applies the bidirectional substring test: either the message
// contains the keyword, or the keyword contains one of the message words.
func keywordsMatch(lowerMessage string, messageWords, keywords []string) bool {
	for _, keyword := range keywords {
		kw := strings.ToLower(keyword)
		if kw == "" {
			continue
		}
		if strings.Contains(lowerMessage, kw) {
			return true
		}
		for _, word := range messageWords {
			if strings.Contains(kw, word) {
				return true
			}
		}
	}
	return false
}

func containsAnyWord(text string, words []string) bool {
	if text == "" {
		return false
	}
	for _, word := range words {
		if strings.Contains(text, word) {
			return true
		}
	}
	return false
}
