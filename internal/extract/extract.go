// Package extract converts uploaded files into plain-text documents ready
// for prompt grounding.
package extract

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"golang.org/x/sync/errgroup"

	"docchat/internal/chat"
)

const pageSeparator = "\n\n"

// File is one selected upload before extraction.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// isPDF checks the declared media type first and falls back to the filename
// extension, same as browsers that omit Content-Type for drag-and-drop.
func (f File) isPDF() bool {
	if strings.HasPrefix(strings.ToLower(f.ContentType), "application/pdf") {
		return true
	}
	return strings.EqualFold(filepath.Ext(f.Name), ".pdf")
}

// Extract converts a single file into its plain-text document. PDFs are read
// page by page; anything else is decoded as UTF-8 text verbatim. An empty
// result is not an error: the caller drops such documents.
func Extract(ctx context.Context, f File) (chat.Document, error) {
	if err := ctx.Err(); err != nil {
		return chat.Document{}, err
	}
	if f.isPDF() {
		text, err := pdfText(f.Data)
		if err != nil {
			return chat.Document{}, fmt.Errorf("extract %s: %w", f.Name, err)
		}
		return chat.Document{Name: f.Name, Text: text}, nil
	}
	return chat.Document{Name: f.Name, Text: string(f.Data)}, nil
}

// Batch extracts every file of one selection concurrently and returns the
// documents in selection order, empty ones dropped. The batch is
// all-or-nothing: the first failure rejects the whole selection and no
// documents are returned.
func Batch(ctx context.Context, files []File) ([]chat.Document, error) {
	results := make([]chat.Document, len(files))
	g, gctx := errgroup.WithContext(ctx)
	for i, f := range files {
		g.Go(func() error {
			doc, err := Extract(gctx, f)
			if err != nil {
				return err
			}
			results[i] = doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, chat.NewError(chat.KindExtraction,
			"one of the selected files could not be read; no documents were added", err)
	}
	docs := make([]chat.Document, 0, len(results))
	for _, doc := range results {
		if doc.Text == "" {
			continue
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// pdfText renders a whole PDF as text: the text tokens of each page joined
// with single spaces, pages joined with a blank line, in page order. A
// missing or corrupt page fails the whole file.
func pdfText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	numPages := reader.NumPage()
	pages := make([]string, 0, numPages)
	for pageNum := 1; pageNum <= numPages; pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			return "", fmt.Errorf("pdf page %d missing", pageNum)
		}
		text, err := pageText(page)
		if err != nil {
			return "", fmt.Errorf("pdf page %d: %w", pageNum, err)
		}
		pages = append(pages, text)
	}
	return strings.Join(pages, pageSeparator), nil
}

// pageText joins one page's text tokens with spaces. The pdf library panics
// on some malformed content streams, so that is converted into the page
// error the batch contract needs.
func pageText(page pdf.Page) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed content stream: %v", r)
		}
	}()
	content := page.Content()
	tokens := make([]string, 0, len(content.Text))
	for _, t := range content.Text {
		tokens = append(tokens, t.S)
	}
	return strings.Join(tokens, " "), nil
}
