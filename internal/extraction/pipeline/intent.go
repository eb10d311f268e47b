package pipeline

import "strings"

// intentPhrases is the cheap precondition vocabulary: first-person
// promise forms, obligation nouns, and day/time words. Only text
// containing at least one of these is worth a recognizer call.
var intentPhrases = []string{
	"i will", "i'll", "i'm going to", "i am going to", "i can",
	"i promise", "i commit", "i agree", "i plan", "i intend", "i shall",
	"we will", "we'll", "we can", "let's", "going to", "need to", "have to",
	"meet", "call you", "appointment", "checkup", "recital", "report",
	"lunch", "dinner", "breakfast", "deadline", "due",
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
	"tomorrow", "tonight", "morning", "afternoon", "evening", "noon",
}

// HasCommitmentIntent reports whether the text contains any intent
// phrase. The check precedes entity recognition.
func HasCommitmentIntent(text string) bool {
	lower := strings.ToLower(text)
	for _, phrase := range intentPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}
