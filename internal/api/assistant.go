package api

import (
	"fmt"
	"net/http"
)

type chatRequest struct {
	Message string `json:"message"`
}

// AssistantChat handles POST /api/assistant/chat, streaming the reply as
// server-sent events. The assistant is best effort and never fails the
// request: upstream trouble streams a static apology instead.
func (h *Handler) AssistantChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Message == "" {
		respondError(w, http.StatusBadRequest, "message required")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		respondError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	h.assistant.Chat(r.Context(), req.Message, func(chunk string) {
		fmt.Fprintf(w, "data: %s\n\n", chunk)
		flusher.Flush()
	})
	fmt.Fprint(w, "data: [DONE]\n\n")
	flusher.Flush()
}

type imageSearchRequest struct {
	Image    string `json:"image"`
	MimeType string `json:"mime_type"`
}

type imageSearchResponse struct {
	ProductIDs []string `json:"product_ids"`
}

// AssistantImageSearch handles POST /api/assistant/image-search: a base64
// image goes in, visually similar catalog product IDs come out. Assistant
// failures return an empty list rather than an error.
func (h *Handler) AssistantImageSearch(w http.ResponseWriter, r *http.Request) {
	var req imageSearchRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Image == "" || req.MimeType == "" {
		respondError(w, http.StatusBadRequest, "image and mime_type required")
		return
	}

	catalog, err := h.products.List(r.Context())
	if err != nil {
		respondInternal(w, r, err)
		return
	}

	ids := h.assistant.ImageSearch(r.Context(), req.Image, req.MimeType, catalog)
	if ids == nil {
		ids = []string{}
	}
	respondJSON(w, http.StatusOK, imageSearchResponse{ProductIDs: ids})
}
