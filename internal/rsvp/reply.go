package rsvp

import (
	"strings"
	"unicode"

	"github.com/aadarsha10/saahitt-guest-manager-sub001/internal/models"
)

var (
	// refusals that contain an acceptance word ("not coming") or are unambiguous on their own
	declinePhrases = []string{
		"not coming", "not attending", "can't come", "cannot come", "won't come", "can't make it",
		"won't make it", "unable to come", "unable to attend", "decline", "declining", "unavailable", "❌",
	}
	hesitationPhrases = []string{
		"not sure", "don't know yet", "will let you know", "🤔",
	}
	acceptKeywords = []string{
		"yes", "yep", "yeah", "accept", "accepting", "attending", "coming", "confirm",
		"confirmed", "will come", "will be there", "✅",
	}
	declineWords = []string{"no", "nope", "nah"}
	maybeWords   = []string{"maybe", "might", "perhaps", "possibly"}
)

var apostrophes = strings.NewReplacer("’", "'", "‘", "'", "ʼ", "'")

// ClassifyReply reads a free-text guest reply and reports which external status it
// expresses. ok is false when the text is not an attendance answer.
//
// Explicit refusal phrases are checked first, then explicit hesitation, then
// acceptance. A bare "no" or a "maybe" only counts when nothing stronger is present,
// so "Yes, no problem!" and "Yes! Might be late" are acceptances.
func ClassifyReply(text string) (status models.ExternalStatus, ok bool) {
	text = apostrophes.Replace(strings.ToLower(strings.TrimSpace(text)))
	if text == "" {
		return "", false
	}
	words := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	switch {
	case containsAny(text, words, declinePhrases...):
		return models.StatusUnavailable, true
	case containsAny(text, words, hesitationPhrases...):
		return models.StatusMaybe, true
	case containsAny(text, words, acceptKeywords...):
		return models.StatusConfirmed, true
	case containsAny(text, words, declineWords...):
		return models.StatusUnavailable, true
	case containsAny(text, words, maybeWords...):
		return models.StatusMaybe, true
	}
	return "", false
}

// containsAny matches single-word keywords against whole words and everything else
// (phrases, emoji) as a substring.
func containsAny(text string, words []string, keywords ...string) bool {
	for _, keyword := range keywords {
		if isWord(keyword) {
			for _, w := range words {
				if w == keyword {
					return true
				}
			}
			continue
		}
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}

func isWord(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return s != ""
}
