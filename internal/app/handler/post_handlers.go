package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/atinyakov/shortlink-registry/internal/app/service"
	"github.com/atinyakov/shortlink-registry/internal/models"
)

type PostHandler struct {
	baseURL  string
	registry service.RegistryIface
	logger   *zap.Logger
}

func NewPost(baseURL string, r service.RegistryIface, l *zap.Logger) *PostHandler {
	return &PostHandler{
		baseURL:  baseURL,
		registry: r,
		logger:   l,
	}
}

// PlainBody shortens the URL sent as a text/plain body and answers with the
// short link as plain text.
func (h *PostHandler) PlainBody(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	body, err := io.ReadAll(http.MaxBytesReader(res, req.Body, 1048576))
	defer req.Body.Close()

	if err != nil {
		res.WriteHeader(http.StatusBadRequest)
		return
	}

	originalURL := strings.TrimSpace(string(body))
	if len(originalURL) == 0 {
		res.WriteHeader(http.StatusBadRequest)
		return
	}

	code, err := h.registry.Shorten(ctx, originalURL)
	if err != nil {
		writeRegistryError(res, h.logger, err)
		return
	}

	res.Header().Set("Content-Type", "text/plain; charset=utf-8")
	res.WriteHeader(http.StatusCreated)

	if _, err := res.Write([]byte(shortLink(h.baseURL, code))); err != nil {
		h.logger.Warn("write response", zap.Error(err))
	}
}

// HandlePostJSON handles POST /api/shorten and answers {"result": link}.
func (h *PostHandler) HandlePostJSON(res http.ResponseWriter, req *http.Request) {
	request, ok := h.decode(res, req)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	code, err := h.registry.Shorten(ctx, request.URL)
	if err != nil {
		writeRegistryError(res, h.logger, err)
		return
	}

	h.writeJSON(res, http.StatusCreated, models.Response{Result: shortLink(h.baseURL, code)})
}

// HandleShorten handles POST /shorten and answers with both the original URL
// and the short link.
func (h *PostHandler) HandleShorten(res http.ResponseWriter, req *http.Request) {
	request, ok := h.decode(res, req)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	code, err := h.registry.Shorten(ctx, request.URL)
	if err != nil {
		writeRegistryError(res, h.logger, err)
		return
	}

	h.writeJSON(res, http.StatusCreated, models.URLInfo{
		OriginalURL: request.URL,
		ShortURL:    shortLink(h.baseURL, code),
	})
}

func (h *PostHandler) decode(res http.ResponseWriter, req *http.Request) (models.Request, bool) {
	var request models.Request

	err := decodeJSONBody(res, req, &request)
	if err != nil {
		var mr *malformedRequest
		if errors.As(err, &mr) {
			http.Error(res, mr.msg, mr.status)
		} else {
			h.logger.Error("decode request body", zap.Error(err))
			http.Error(res, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
		return request, false
	}

	return request, true
}

func (h *PostHandler) writeJSON(res http.ResponseWriter, status int, v any) {
	response, err := json.Marshal(v)
	if err != nil {
		h.logger.Error("encode response", zap.Error(err))
		res.WriteHeader(http.StatusInternalServerError)
		return
	}

	res.Header().Set("Content-Type", "application/json")
	res.WriteHeader(status)

	if _, err := res.Write(response); err != nil {
		h.logger.Warn("write response", zap.Error(err))
	}
}
