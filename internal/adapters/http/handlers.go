package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/viralforge/product-event-service/internal/domain"
)

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	product, ok := decodeProduct(w, r)
	if !ok {
		return
	}
	event, err := h.service.Create(r.Context(), product, r.Header.Get("Idempotency-Key"))
	if err != nil {
		status, code, msg := mapDomainError(err)
		writeError(w, status, code, msg)
		return
	}
	writeSuccess(w, http.StatusCreated, event)
}

func (h *Handler) updateProduct(w http.ResponseWriter, r *http.Request) {
	product, ok := decodeProduct(w, r)
	if !ok {
		return
	}
	adoptPathID(&product, chi.URLParam(r, "id"))
	event, err := h.service.Update(r.Context(), product, r.Header.Get("Idempotency-Key"))
	if err != nil {
		status, code, msg := mapDomainError(err)
		writeError(w, status, code, msg)
		return
	}
	writeSuccess(w, http.StatusOK, event)
}

func (h *Handler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	product, ok := decodeProduct(w, r)
	if !ok {
		return
	}
	adoptPathID(&product, chi.URLParam(r, "id"))
	event, err := h.service.Delete(r.Context(), product, r.Header.Get("Idempotency-Key"))
	if err != nil {
		status, code, msg := mapDomainError(err)
		writeError(w, status, code, msg)
		return
	}
	writeSuccess(w, http.StatusOK, event)
}

func decodeProduct(w http.ResponseWriter, r *http.Request) (domain.Product, bool) {
	var product domain.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid json body")
		return domain.Product{}, false
	}
	if err := domain.ValidateProduct(product); err != nil {
		status, code, msg := mapDomainError(err)
		writeError(w, status, code, msg)
		return domain.Product{}, false
	}
	return product, true
}

// adoptPathID fills a missing snapshot id from the route parameter so
// id-addressed routes stay consistent with their payloads.
func adoptPathID(p *domain.Product, pathID string) {
	if p.ID == nil && pathID != "" {
		p.ID = &pathID
	}
}
