package handlers

import (
	"net/http"

	"github.com/filehub/filehub-go/internal/httpx"
	"github.com/filehub/filehub-go/internal/version"
)

func VersionHandler(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, version.Get())
}
