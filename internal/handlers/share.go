package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/filehub/filehub-go/internal/access"
	"github.com/filehub/filehub-go/internal/httpx"
	"github.com/filehub/filehub-go/internal/relation"
)

type shareRequest struct {
	Permissions []access.Assignment `json:"permissions"`
}

// Share handles POST /api/files/{uuid}/share. Only the owner may share.
// The whole batch is validated before any tuple is written; the first
// bad assignment aborts it with zero side effects.
func (h *FilesHandler) Share(w http.ResponseWriter, r *http.Request) {
	f, _, ok := h.requireRelation(w, r, relation.Owner)
	if !ok {
		return
	}

	var req shareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Permissions) == 0 {
		httpx.WriteError(w, http.StatusBadRequest, "permissions must not be empty")
		return
	}

	if err := h.Access.GrantRelations(r.Context(), f.UUID, req.Permissions); err != nil {
		writeOpError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"detail": "file shared successfully"})
}

// Unshare handles DELETE /api/files/{uuid}/share: the inverse batch.
func (h *FilesHandler) Unshare(w http.ResponseWriter, r *http.Request) {
	f, _, ok := h.requireRelation(w, r, relation.Owner)
	if !ok {
		return
	}

	var req shareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Permissions) == 0 {
		httpx.WriteError(w, http.StatusBadRequest, "permissions must not be empty")
		return
	}

	if err := h.Access.RevokeRelations(r.Context(), f.UUID, req.Permissions); err != nil {
		writeOpError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"detail": "permissions revoked"})
}
