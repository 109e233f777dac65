package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/MrSnakeDoc/comments/internal/comment"
	"github.com/MrSnakeDoc/comments/internal/events"
	"github.com/MrSnakeDoc/comments/internal/httpserver/deps"
	"github.com/MrSnakeDoc/comments/internal/logger"
)

const (
	msgFetchFailed      = "Failed to fetch comments"
	msgCreateFailed     = "Failed to create comment"
	msgMissingFields    = "handle and text are required"
	msgHandleNotAllowed = "Handle not allowed"

	// maxBodyBytes caps the create payload; larger bodies are read as empty.
	maxBodyBytes = 100 << 10
)

var errStoreNotInitialized = errors.New("store not initialized")

type createRequest struct {
	Handle json.RawMessage `json:"handle"`
	Text   json.RawMessage `json:"text"`
}

type createResponse struct {
	ID string `json:"id"`
}

// ListComments returns the newest comments, newest first.
func ListComments(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		docs, err := d.Store.Find(r.Context(), comment.Query())
		if err != nil {
			d.Logger.Error("GET /comments failed",
				logger.String("request_id", middleware.GetReqID(r.Context())),
				logger.Error(err))
			writeError(w, http.StatusInternalServerError, msgFetchFailed, d.Logger)
			return
		}

		writeJSON(w, http.StatusOK, comment.FromDocuments(docs), d.Logger)
	}
}

// CreateComment validates and stores one comment.
func CreateComment(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := decodeCreateRequest(w, r)

		draft, err := comment.Validate(req.Handle, req.Text)
		switch {
		case errors.Is(err, comment.ErrMissingFields):
			d.Logger.Debug("rejected comment: missing fields")
			writeError(w, http.StatusBadRequest, msgMissingFields, d.Logger)
			return
		case errors.Is(err, comment.ErrHandleNotAllowed):
			d.Logger.Debug("rejected comment: handle not allowed")
			writeError(w, http.StatusBadRequest, msgHandleNotAllowed, d.Logger)
			return
		}

		id, err := d.Store.Add(r.Context(), comment.Collection, draft.Fields())
		if err != nil {
			d.Logger.Error("POST /comments failed",
				logger.String("request_id", middleware.GetReqID(r.Context())),
				logger.Error(err))
			writeError(w, http.StatusInternalServerError, msgCreateFailed, d.Logger)
			return
		}

		if d.Publisher != nil {
			event := events.CommentCreated{ID: id, Handle: draft.Handle, Text: draft.Text}
			if err := d.Publisher.Publish(r.Context(), events.TopicCommentCreated, event); err != nil {
				d.Logger.Warn("failed to publish comment event",
					logger.String("id", id),
					logger.Error(err))
			}
		}

		writeJSON(w, http.StatusCreated, createResponse{ID: id}, d.Logger)
	}
}

// decodeCreateRequest reads the JSON body. Bodies that are not JSON, are
// malformed or exceed maxBodyBytes decode to an empty request.
func decodeCreateRequest(w http.ResponseWriter, r *http.Request) createRequest {
	var req createRequest
	if r.Body == nil || !isJSON(r.Header.Get("Content-Type")) {
		return req
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return createRequest{}
	}
	if err := json.Unmarshal(body, &req); err != nil {
		return createRequest{}
	}
	return req
}

func isJSON(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}
