package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docchat/internal/chat"
)

func TestComposeContainsEverythingInOrder(t *testing.T) {
	docs := []chat.Document{
		{Name: "first.txt", Text: "The sky is blue."},
		{Name: "second.md", Text: "Grass is green."},
	}
	question := "What color is the sky?"

	out := Compose(question, docs)

	// Every document's name and full text, and the literal question.
	for _, doc := range docs {
		assert.Contains(t, out, doc.Name)
		assert.Contains(t, out, doc.Text)
	}
	assert.Contains(t, out, question)

	// Document order preserved, question after the documents.
	firstIdx := strings.Index(out, "The sky is blue.")
	secondIdx := strings.Index(out, "Grass is green.")
	questionIdx := strings.Index(out, question)
	require.True(t, firstIdx >= 0 && secondIdx >= 0 && questionIdx >= 0)
	assert.Less(t, firstIdx, secondIdx)
	assert.Less(t, secondIdx, questionIdx)
}

func TestComposeDelimitsDocuments(t *testing.T) {
	docs := []chat.Document{
		{Name: "a.txt", Text: "aaa"},
		{Name: "b.txt", Text: "bbb"},
	}
	out := Compose("q", docs)
	assert.Equal(t, 2, strings.Count(out, "--- BEGIN DOCUMENT:"))
	assert.Equal(t, 2, strings.Count(out, "--- END DOCUMENT:"))
	assert.Contains(t, out, "--- BEGIN DOCUMENT: a.txt ---")
	assert.Contains(t, out, "--- END DOCUMENT: b.txt ---")
}

func TestSystemInstructionFixedSentences(t *testing.T) {
	assert.Contains(t, SystemInstruction, NotFoundAnswer)
	assert.Contains(t, SystemInstruction, "bullet list")
	assert.Contains(t, SystemInstruction, "only from the text of the supplied documents")
}
