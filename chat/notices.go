package chat

import "strings"

// Fixed wire texts. Clients pattern-match on these, so they never change
// without a protocol bump.
const (
	// NoContextNotice is emitted when retrieval returns nothing for the
	// thread's asset. Not recorded in history.
	NoContextNotice = "I can't find an answer relevant to the provided document."

	// NotRelevantFallback is the complete answer for questions the
	// relevance gate rejects. Recorded in history.
	NotRelevantFallback = "The question is not related to the document's context."

	// StreamErrorToken terminates the stream after a mid-answer failure.
	StreamErrorToken = "Agent error: problem generating answer."

	// CapabilityNotice answers meta/help questions without an LLM call.
	// Not recorded in history.
	CapabilityNotice = "I answer questions about the document attached to this conversation. Ask me anything about its contents."
)

// metaPhrases are messages answered with CapabilityNotice.
var metaPhrases = []string{
	"help",
	"what can you do",
	"what can you do?",
	"who are you",
	"who are you?",
}

// isMetaQuestion reports whether the message is a meta/help phrase rather
// than a document question.
func isMetaQuestion(message string) bool {
	normalized := strings.ToLower(strings.TrimSpace(message))
	for _, phrase := range metaPhrases {
		if normalized == phrase {
			return true
		}
	}
	return false
}
