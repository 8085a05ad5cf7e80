package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"

	"docchat/internal/app"
	"docchat/internal/chat"
	"docchat/internal/extract"
	"docchat/internal/httputil"
	"docchat/internal/prompt"
)

// sessionHeader carries the chat session id; responses echo the effective id
// so the browser can stick to its session.
const sessionHeader = "X-Session-Id"

// allowedExtensions is the upload-surface allow-list. The extractor itself
// only distinguishes PDF from plain text.
var allowedExtensions = map[string]bool{
	".txt":  true,
	".md":   true,
	".json": true,
	".csv":  true,
	".pdf":  true,
}

type askRequest struct {
	Question string `json:"question" validate:"required,max=2000"`
}

func main() {
	deps, err := app.Build()
	if err != nil {
		slog.Default().Error("failed to build dependencies", "err", err)
		os.Exit(1)
	}
	r := newRouter(deps)

	addr := fmt.Sprintf(":%d", deps.Config.Port)
	deps.Log.Info("docchat listening", "addr", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		deps.Log.Error("server failed", "err", err)
	}
}

func newRouter(deps app.Deps) *chi.Mux {
	r := httputil.NewRouter(deps.Log)

	r.Post("/api/documents", uploadHandler(deps))
	r.Delete("/api/documents/{name}", removeHandler(deps))
	r.Post("/api/ask", askHandler(deps))
	r.Get("/api/state", stateHandler(deps))
	r.Get("/api/suggestions", suggestionsHandler(deps))
	r.Post("/api/reset", resetHandler(deps))
	r.Get("/healthz", httputil.HealthHandler(deps.Log))

	return r
}

// sessionFor resolves the request's chat session, creating one when the
// header is absent or expired, and echoes the effective id back.
func sessionFor(deps app.Deps, w http.ResponseWriter, r *http.Request) *chat.Session {
	sess, id := deps.Sessions.Get(r.Header.Get(sessionHeader))
	w.Header().Set(sessionHeader, id)
	return sess
}

func uploadHandler(deps app.Deps) http.HandlerFunc {
	maxSize := deps.Config.MaxUploadSize

	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessionFor(deps, w, r)

		if r.ContentLength > maxSize {
			httputil.Fail(deps.Log, w, fmt.Sprintf("upload too large (max %d bytes)", maxSize), nil, http.StatusBadRequest)
			return
		}
		if err := r.ParseMultipartForm(maxSize); err != nil {
			httputil.Fail(deps.Log, w, "invalid multipart payload", err, http.StatusBadRequest)
			return
		}
		headers := r.MultipartForm.File["files"]
		if len(headers) == 0 {
			httputil.Fail(deps.Log, w, "at least one file is required (field \"files\")", nil, http.StatusBadRequest)
			return
		}

		files := make([]extract.File, 0, len(headers))
		for _, header := range headers {
			ext := strings.ToLower(filepath.Ext(header.Filename))
			if !allowedExtensions[ext] {
				httputil.Fail(deps.Log, w,
					fmt.Sprintf("unsupported file type %q (allowed: .txt, .md, .json, .csv, .pdf)", ext),
					nil, http.StatusBadRequest)
				return
			}
			if header.Size > maxSize {
				httputil.Fail(deps.Log, w, fmt.Sprintf("file %s too large (max %d bytes)", header.Filename, maxSize), nil, http.StatusBadRequest)
				return
			}
			f, err := header.Open()
			if err != nil {
				httputil.Fail(deps.Log, w, "failed to read upload", err, http.StatusInternalServerError)
				return
			}
			data, err := io.ReadAll(f)
			f.Close()
			if err != nil {
				httputil.Fail(deps.Log, w, "failed to read upload", err, http.StatusInternalServerError)
				return
			}
			files = append(files, extract.File{
				Name:        header.Filename,
				ContentType: header.Header.Get("Content-Type"),
				Data:        data,
			})
		}

		// All-or-nothing: one unreadable file rejects the whole selection and
		// the session's document set is left untouched.
		docs, err := extract.Batch(r.Context(), files)
		if err != nil {
			sess.SetError(err)
			httputil.FailErr(deps.Log, w, err)
			return
		}
		set := sess.AddDocuments(docs)

		httputil.WriteJSON(w, http.StatusOK, map[string]any{
			"added":     len(docs),
			"documents": set,
		})
	}
}

func removeHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessionFor(deps, w, r)
		name := chi.URLParam(r, "name")
		if !sess.RemoveDocument(name) {
			httputil.Fail(deps.Log, w, fmt.Sprintf("no document named %q", name), nil, http.StatusNotFound)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]any{
			"documents": sess.Snapshot().Documents,
		})
	}
}

func askHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessionFor(deps, w, r)

		var req askRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httputil.Fail(deps.Log, w, "invalid payload", err, http.StatusBadRequest)
			return
		}
		if err := httputil.Validator.Struct(&req); err != nil {
			verr := chat.NewError(chat.KindValidation, "question is required and must be at most 2000 characters", err)
			sess.SetError(verr)
			httputil.FailErr(deps.Log, w, verr)
			return
		}

		// BeginAsk enforces the submission contract: non-empty question,
		// non-empty document set, at most one request in flight. On success
		// it appends the user message and returns the document snapshot the
		// answer is grounded in.
		docs, err := sess.BeginAsk(req.Question)
		if err != nil {
			sess.SetError(err)
			httputil.FailErr(deps.Log, w, err)
			return
		}

		answer, err := deps.LLM.Answer(r.Context(), prompt.Compose(req.Question, docs), prompt.SystemInstruction)
		if err != nil {
			sess.FailAsk(err)
			httputil.FailErr(deps.Log, w, err)
			return
		}
		msg := sess.CompleteAsk(answer)

		httputil.WriteJSON(w, http.StatusOK, map[string]any{
			"answer": msg,
		})
	}
}

func stateHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessionFor(deps, w, r)
		httputil.WriteJSON(w, http.StatusOK, sess.Snapshot())
	}
}

func suggestionsHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]any{
			"suggestions": deps.Config.Suggestions,
		})
	}
}

func resetHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessionFor(deps, w, r)
		sess.Reset()
		httputil.WriteJSON(w, http.StatusOK, sess.Snapshot())
	}
}
