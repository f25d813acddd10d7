package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/filehub/filehub-go/internal/access"
	"github.com/filehub/filehub-go/internal/files"
	"github.com/filehub/filehub-go/internal/httpx"
	"github.com/filehub/filehub-go/internal/relation"
	"github.com/filehub/filehub-go/internal/users"
)

// UserHeader carries the authenticated caller's id. Authentication itself
// happens upstream (gateway / reverse proxy); this service trusts the
// header the same way the original trusted its session middleware.
const UserHeader = "X-User-Id"

type FilesHandler struct {
	Files  *files.Service
	Access *access.Service
}

func NewFilesHandler(fs *files.Service, acc *access.Service) *FilesHandler {
	return &FilesHandler{Files: fs, Access: acc}
}

func currentUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.Header.Get(UserHeader)
	if id == "" {
		httpx.WriteError(w, http.StatusUnauthorized, "missing "+UserHeader+" header")
		return "", false
	}
	return id, true
}

// writeOpError maps the access/files error taxonomy onto HTTP statuses.
// Anything unclassified is a tuple-store failure and surfaces as 500.
func writeOpError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, relation.ErrInvalidRelation),
		errors.Is(err, users.ErrUnknownPrincipal):
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, files.ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, "file not found")
	default:
		httpx.WriteError(w, http.StatusInternalServerError, "authorization store error")
	}
}

// List handles GET /api/files: every file the caller can view.
func (h *FilesHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	ids, err := h.Access.ListAccessibleFiles(r.Context(), user, relation.CanView)
	if err != nil {
		writeOpError(w, err)
		return
	}
	out, err := h.Files.List(r.Context(), ids)
	if err != nil {
		writeOpError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"files": out})
}

// Create handles POST /api/files: persist the record, then the owner
// tuple. A failed owner write rolls the record back.
func (h *FilesHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	var p files.Payload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if p.Name == "" {
		httpx.WriteError(w, http.StatusBadRequest, "name is required")
		return
	}

	f, err := h.Files.Create(r.Context(), user, p)
	if err != nil {
		writeOpError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, f)
}

// requireRelation loads the file and checks the caller's relation on it.
// Returns the record only when the check passed.
func (h *FilesHandler) requireRelation(w http.ResponseWriter, r *http.Request, rel relation.Relation) (*files.File, string, bool) {
	user, ok := currentUser(w, r)
	if !ok {
		return nil, "", false
	}
	uuid := chi.URLParam(r, "uuid")

	f, err := h.Files.Get(r.Context(), uuid)
	if err != nil {
		writeOpError(w, err)
		return nil, "", false
	}

	allowed, err := h.Access.CheckAccess(r.Context(), user, rel, f.UUID)
	if err != nil {
		writeOpError(w, err)
		return nil, "", false
	}
	if !allowed {
		// PermissionDenied is this layer's decision; the access core
		// only returns the boolean.
		httpx.WriteError(w, http.StatusForbidden, "you do not have permission to access this file")
		return nil, "", false
	}
	return f, user, true
}

// Get handles GET /api/files/{uuid} (needs can_view).
func (h *FilesHandler) Get(w http.ResponseWriter, r *http.Request) {
	f, _, ok := h.requireRelation(w, r, relation.CanView)
	if !ok {
		return
	}
	httpx.WriteJSON(w, http.StatusOK, f)
}

// Update handles PUT /api/files/{uuid} (needs can_edit).
func (h *FilesHandler) Update(w http.ResponseWriter, r *http.Request) {
	f, _, ok := h.requireRelation(w, r, relation.CanEdit)
	if !ok {
		return
	}

	var p files.Payload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	upd, err := h.Files.Update(r.Context(), f.UUID, p)
	if err != nil {
		writeOpError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, upd)
}

// Delete handles DELETE /api/files/{uuid} (needs owner). Tuples are
// revoked before the record goes; a failed revoke aborts the delete.
func (h *FilesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	f, _, ok := h.requireRelation(w, r, relation.Owner)
	if !ok {
		return
	}
	if err := h.Files.Delete(r.Context(), f.UUID); err != nil {
		writeOpError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
