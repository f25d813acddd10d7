package handlers

import (
	"net/http"

	"github.com/filehub/filehub-go/internal/httpx"
	"github.com/filehub/filehub-go/internal/relation"
)

// Permissions handles GET /api/files/{uuid}/permissions: the principals
// holding each assignable relation. Identifiers come back store-shaped
// ("user:<id>"), unstripped.
func (h *FilesHandler) Permissions(w http.ResponseWriter, r *http.Request) {
	f, _, ok := h.requireRelation(w, r, relation.CanView)
	if !ok {
		return
	}

	perms := map[string][]string{}
	for _, rel := range relation.Assignable {
		holders, err := h.Access.ListAuthorizedUsers(r.Context(), f.UUID, rel)
		if err != nil {
			writeOpError(w, err)
			return
		}
		if holders == nil {
			holders = []string{}
		}
		perms[rel.String()+"s"] = holders
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"file":        f.UUID,
		"permissions": perms,
	})
}

// Relations handles GET /api/files/{uuid}/relations: the caller's own
// assignable relations on the file, echoed with the probed pair.
func (h *FilesHandler) Relations(w http.ResponseWriter, r *http.Request) {
	f, user, ok := h.requireRelation(w, r, relation.CanView)
	if !ok {
		return
	}

	sum, err := h.Access.ListRelationsForFile(r.Context(), user, f.UUID)
	if err != nil {
		writeOpError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, sum)
}
