package rag

import (
	"fmt"
	"strings"
)

// Mode selects the prompt strategy and retrieval parameters for a chat turn.
type Mode string

const (
	ModeAsk       Mode = "ask"
	ModeSummarize Mode = "summarize"
)

// ParseMode maps the wire-level action tag to a Mode, rejecting anything
// outside the closed set.
func ParseMode(action string) (Mode, error) {
	switch Mode(action) {
	case ModeAsk:
		return ModeAsk, nil
	case ModeSummarize:
		return ModeSummarize, nil
	}
	return "", fmt.Errorf("unknown chat action %q", action)
}

// SummarizeRetrievalQuery approximates "everything relevant" for summarize
// mode; the vector engine requires a query string and cannot list a scope
// unconditionally.
const SummarizeRetrievalQuery = "medical history diagnosis test results medications treatment findings health condition"

const (
	askSystemInstruction = "You are Aarogya AI, a careful medical assistant. " +
		"Analyze the excerpts from the patient's uploaded medical reports below and answer the question. " +
		"You may add general wellness suggestions, but never prescribe medication or dosages."

	summarizeSystemInstruction = "You are Aarogya AI, a careful medical assistant. " +
		"Using the excerpts from the patient's uploaded medical reports below, produce a summary in three sections: " +
		"Key Findings, Recent Actions, and Overall Status."

	noContextSystemInstruction = "You are Aarogya AI, a careful medical assistant. " +
		"No personal medical records were found for this user, so answer from general knowledge only, " +
		"say that you have no access to their records, and always close with a reminder to consult a qualified doctor."

	contextHeader = "--- MEDICAL RECORD EXCERPTS ---"
	contextFooter = "--- END OF EXCERPTS ---"

	noContextBlock = "No medical records were found for this user."

	summarizeInstruction = "Summarize this patient's medical records."
)

// BuildPrompt assembles the full prompt string for one chat turn. It is a
// pure function of its inputs: mode, the retrieved chunk texts, and the
// user's question (ignored in summarize mode).
func BuildPrompt(mode Mode, chunks []string, question string) string {
	if len(chunks) == 0 {
		return noContextSystemInstruction + "\n\n" + noContextBlock + "\n\n" + question
	}

	contextBlock := contextHeader + "\n" + strings.Join(chunks, "\n\n") + "\n" + contextFooter

	if mode == ModeSummarize {
		return summarizeSystemInstruction + "\n\n" + contextBlock + "\n\n" + summarizeInstruction
	}
	return askSystemInstruction + "\n\n" + contextBlock + "\n\n" + question
}
