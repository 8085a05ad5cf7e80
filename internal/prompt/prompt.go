// Package prompt assembles the grounded prompt sent with every question.
package prompt

import (
	"strings"

	"docchat/internal/chat"
)

// NotFoundAnswer is the exact sentence the model must reply with when the
// documents do not contain the answer. The UI matches on it.
const NotFoundAnswer = "The answer is not found in the provided documents."

// SystemInstruction is attached to every outbound request, independent of
// document or question content.
const SystemInstruction = `You are a document question-answering assistant.
Answer strictly and only from the text of the supplied documents.
When possible, cite the name of the document (and page, if apparent) that supports your answer.
If the documents do not contain the answer, reply with exactly: "` + NotFoundAnswer + `"
When asked to summarize, respond with a bullet list.
Keep answers concise.`

const instructionFrame = "Answer the question below using only the documents above."

// Compose renders each document as a delimited labeled block, in document
// order, followed by the instruction frame and the literal question. Pure
// function; the caller guarantees docs is non-empty.
func Compose(question string, docs []chat.Document) string {
	var b strings.Builder
	for _, doc := range docs {
		b.WriteString("--- BEGIN DOCUMENT: ")
		b.WriteString(doc.Name)
		b.WriteString(" ---\n")
		b.WriteString(doc.Text)
		b.WriteString("\n--- END DOCUMENT: ")
		b.WriteString(doc.Name)
		b.WriteString(" ---\n\n")
	}
	b.WriteString(instructionFrame)
	b.WriteString("\n\nQuestion: ")
	b.WriteString(question)
	return b.String()
}
