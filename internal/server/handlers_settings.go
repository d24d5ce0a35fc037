package server

import (
	"net/http"
	"strings"

	"github.com/claude/runpro/internal/models"
	"github.com/claude/runpro/internal/storage"
)

const maxAvatarLen = 256

type avatarBody struct {
	Avatar string `json:"avatar"`
}

// handleGetAvatar returns the stored avatar choice, "" when none was made.
func (s *Server) handleGetAvatar(w http.ResponseWriter, r *http.Request) {
	var avatar string
	if _, err := storage.ReadJSONOrZero(r.Context(), s.KV, storage.KeyAvatarChoice, &avatar, s.log); err != nil {
		s.writeError(w, r, "", err)
		return
	}
	writeJSON(w, http.StatusOK, avatarBody{Avatar: avatar})
}

func (s *Server) handlePutAvatar(w http.ResponseWriter, r *http.Request) {
	var body avatarBody
	if err := decodeJSON(w, r, &body); err != nil {
		s.writeError(w, r, "", err)
		return
	}
	body.Avatar = strings.TrimSpace(body.Avatar)
	if body.Avatar == "" || len(body.Avatar) > maxAvatarLen {
		s.writeError(w, r, "", models.Invalid("avatar", "must be 1 to 256 characters"))
		return
	}
	if err := storage.WriteJSON(r.Context(), s.KV, storage.KeyAvatarChoice, body.Avatar); err != nil {
		s.writeError(w, r, "", err)
		return
	}
	writeJSON(w, http.StatusOK, body)
}
