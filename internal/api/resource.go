package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// Controller is the subset of crud.Controller served over HTTP.
type Controller[D any, ID comparable] interface {
	Resource() string
	ParseID(raw string) (ID, error)
	Post(ctx context.Context, object D) (ID, error)
	Get(ctx context.Context, id ID) (D, error)
	Put(ctx context.Context, id ID, object D) error
	Delete(ctx context.Context, id ID) error
	List(ctx context.Context) ([]D, error)
}

// CreatedResponse is the body of a successful POST.
type CreatedResponse[ID comparable] struct {
	ID ID `json:"id"`
}

// Mount registers the collection and item routes of c on r:
//
//	GET    /      list
//	POST   /      create, 201 with Location
//	GET    /{id}  read, relationships included
//	PUT    /{id}  replace, 204
//	DELETE /{id}  remove, 204
func Mount[D any, ID comparable](r chi.Router, c Controller[D, ID], logger *slog.Logger) {
	h := &resourceHandler[D, ID]{c: c, logger: logger}
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type resourceHandler[D any, ID comparable] struct {
	c      Controller[D, ID]
	logger *slog.Logger
}

func (h *resourceHandler[D, ID]) list(w http.ResponseWriter, r *http.Request) {
	objects, err := h.c.List(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, objects, h.logger)
}

func (h *resourceHandler[D, ID]) create(w http.ResponseWriter, r *http.Request) {
	object, ok := h.decode(w, r)
	if !ok {
		return
	}

	id, err := h.c.Post(r.Context(), object)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("%s/%v", strings.TrimSuffix(r.URL.Path, "/"), id))
	writeJSON(w, http.StatusCreated, CreatedResponse[ID]{ID: id}, h.logger)
}

func (h *resourceHandler[D, ID]) get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.id(w, r)
	if !ok {
		return
	}

	object, err := h.c.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, object, h.logger)
}

func (h *resourceHandler[D, ID]) update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.id(w, r)
	if !ok {
		return
	}
	object, ok := h.decode(w, r)
	if !ok {
		return
	}

	if err := h.c.Put(r.Context(), id, object); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *resourceHandler[D, ID]) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.id(w, r)
	if !ok {
		return
	}

	if err := h.c.Delete(r.Context(), id); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *resourceHandler[D, ID]) id(w http.ResponseWriter, r *http.Request) (ID, bool) {
	id, err := h.c.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: fmt.Sprintf("Invalid %s ID", h.c.Resource())}, h.logger)
		return id, false
	}
	return id, true
}

func (h *resourceHandler[D, ID]) decode(w http.ResponseWriter, r *http.Request) (D, bool) {
	var object D
	if err := json.NewDecoder(r.Body).Decode(&object); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid JSON"}, h.logger)
		return object, false
	}
	return object, true
}
