package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles admin authentication
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decode(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	token, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"token":      token,
		"token_type": "Bearer",
	})
}

// ListContent returns a public homepage collection
func (h *Handler) ListContent(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.ListContent(r.Context(), mux.Vars(r)["kind"])
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, items)
}

// GetContent returns one item of a collection
func (h *Handler) GetContent(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	item, err := h.svc.GetContent(r.Context(), vars["kind"], vars["id"])
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, item)
}

type contentRequest struct {
	Position int             `json:"position"`
	Data     json.RawMessage `json:"data"`
}

// CreateContent handles admin item creation
func (h *Handler) CreateContent(w http.ResponseWriter, r *http.Request) {
	var req contentRequest
	if err := decode(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	item, err := h.svc.AddContent(r.Context(), mux.Vars(r)["kind"], req.Data, req.Position)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, item)
}

// UpdateContent handles admin item replacement
func (h *Handler) UpdateContent(w http.ResponseWriter, r *http.Request) {
	var req contentRequest
	if err := decode(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	vars := mux.Vars(r)
	item, err := h.svc.UpdateContent(r.Context(), vars["kind"], vars["id"], req.Data, req.Position)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, item)
}

// DeleteContent handles admin item removal
func (h *Handler) DeleteContent(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	if err := h.svc.RemoveContent(r.Context(), vars["kind"], vars["id"]); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
