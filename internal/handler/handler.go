// Package handler is the HTTP presentation adapter for the order engine. It
// maps JSON requests onto engine calls and engine results back onto JSON; no
// pricing or cart logic lives here.
package handler

import (
	"io"
	"net/http"
	"strconv"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/xenking/freshbowl-pos/internal/domain/catalog"
	"github.com/xenking/freshbowl-pos/internal/domain/order"
	"github.com/xenking/freshbowl-pos/internal/session"
)

// maxBodyBytes bounds request bodies; item configurations are tiny.
const maxBodyBytes = 64 << 10

// Handler serves the POS API for a single till session.
type Handler struct {
	catalog *catalog.Catalog
	session *session.Session
}

// New constructs a Handler over the given catalog and session.
func New(c *catalog.Catalog, s *session.Session) *Handler {
	return &Handler{catalog: c, session: s}
}

// Register mounts all API routes on the mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/menu", h.getMenu)
	mux.HandleFunc("POST /api/quote", h.postQuote)
	mux.HandleFunc("GET /api/order", h.getOrder)
	mux.HandleFunc("POST /api/order/items", h.postItem)
	mux.HandleFunc("DELETE /api/order/items/{id}", h.deleteItem)
	mux.HandleFunc("DELETE /api/order", h.deleteOrder)
	mux.HandleFunc("PUT /api/order/context", h.putContext)
	mux.HandleFunc("POST /api/order/checkout", h.postCheckout)
}

func (h *Handler) getMenu(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, encodeMenu(h.catalog))
}

func (h *Handler) postQuote(w http.ResponseWriter, r *http.Request) {
	req, err := readItemRequest(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	cfg, err := req.config()
	if err != nil {
		writeConfigError(w, err)
		return
	}

	bd, err := h.session.Quote(cfg)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, encodeBreakdown(bd))
}

func (h *Handler) getOrder(w http.ResponseWriter, _ *http.Request) {
	lines, totals, ctx := h.session.Snapshot()
	writeJSON(w, http.StatusOK, encodeOrder(lines, totals, ctx))
}

func (h *Handler) postItem(w http.ResponseWriter, r *http.Request) {
	req, err := readItemRequest(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	cfg, err := req.config()
	if err != nil {
		writeConfigError(w, err)
		return
	}

	line, err := h.session.Commit(cfg, req.quantity)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, encodeLine(line))
}

func (h *Handler) deleteItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid line id")
		return
	}
	// Removing an unknown ID is deliberately a no-op, so 204 either way.
	if err := h.session.Remove(id); err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) deleteOrder(w http.ResponseWriter, r *http.Request) {
	if err := h.session.Clear(); err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) putContext(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	ctx, err := decodeContextRequest(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.session.SetContext(ctx)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) postCheckout(w http.ResponseWriter, r *http.Request) {
	receipt, err := h.session.Checkout()
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, encodeReceipt(receipt))
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, errors.Wrap(err, "read body")
	}
	return body, nil
}

func readItemRequest(w http.ResponseWriter, r *http.Request) (itemRequest, error) {
	body, err := readBody(w, r)
	if err != nil {
		return itemRequest{}, err
	}
	return decodeItemRequest(body)
}

// writeConfigError maps request-to-configuration conversion errors: an
// unknown size is a catalog miss (404), anything else is a malformed request.
func writeConfigError(w http.ResponseWriter, err error) {
	var notFound *catalog.NotFoundError
	if errors.As(err, &notFound) {
		writeError(w, http.StatusNotFound, notFound.Error())
		return
	}
	writeError(w, http.StatusBadRequest, err.Error())
}

// writeDomainError maps engine errors onto HTTP statuses.
func (h *Handler) writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	var notFound *catalog.NotFoundError
	switch {
	case errors.As(err, &notFound):
		writeError(w, http.StatusNotFound, notFound.Error())
	case errors.Is(err, order.ErrInvalidQuantity):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, order.ErrEmptyCart),
		errors.Is(err, order.ErrOrderClosed):
		writeError(w, http.StatusConflict, err.Error())
	default:
		zctx.From(r.Context()).Error("unhandled engine error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
