package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/atinyakov/shortlink-registry/internal/app/service"
	"github.com/atinyakov/shortlink-registry/internal/models"
)

type GetHandler struct {
	registry service.RegistryIface
	logger   *zap.Logger
}

func NewGet(r service.RegistryIface, l *zap.Logger) *GetHandler {
	return &GetHandler{
		registry: r,
		logger:   l,
	}
}

// ByShort redirects to the URL stored for the code in the path.
func (h *GetHandler) ByShort(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	code := chi.URLParam(req, "code")
	h.logger.Debug("resolve", zap.String("code", code))

	original, err := h.registry.Resolve(ctx, code)
	if err != nil {
		writeRegistryError(res, h.logger, err)
		return
	}

	res.Header().Set("Location", original)
	res.WriteHeader(http.StatusTemporaryRedirect)
}

func (h *GetHandler) PingDB(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	if err := h.registry.PingContext(ctx); err != nil {
		h.logger.Warn("storage ping failed", zap.Error(err))
		http.Error(res, err.Error(), http.StatusInternalServerError)
		return
	}

	res.WriteHeader(http.StatusOK)
}

// Stats reports how many mappings are stored.
func (h *GetHandler) Stats(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	n, err := h.registry.Stats(ctx)
	if err != nil {
		writeRegistryError(res, h.logger, err)
		return
	}

	response, err := json.Marshal(models.Stats{URLs: n})
	if err != nil {
		res.WriteHeader(http.StatusInternalServerError)
		return
	}

	res.Header().Set("Content-Type", "application/json")
	res.WriteHeader(http.StatusOK)

	if _, err := res.Write(response); err != nil {
		h.logger.Warn("write response", zap.Error(err))
	}
}
