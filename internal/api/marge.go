package api

import (
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/soundcork/soundcork/internal/group"
)

// handleDeviceGroupStatus reports a device's pairing status: the stored
// group document when grouped, the <group/> marker when not.
//
// GET /marge/streaming/account/{account}/device/{device}/group
func (s *Server) handleDeviceGroupStatus(w http.ResponseWriter, r *http.Request) {
	account := s.requireAccount(w, r)
	if account == "" {
		return
	}
	device := chi.URLParam(r, "device")

	doc, err := s.orch.DeviceGroupStatus(account, device)
	if err != nil {
		renderError(w, err)
		return
	}
	writeRawXML(w, http.StatusOK, doc)
}

// handleLocalCreateGroup persists a caller-supplied group document without
// contacting any speaker. The document must validate and its members must
// be free and eligible; the assigned id comes back in the response body.
//
// POST /marge/streaming/account/{account}/group
func (s *Server) handleLocalCreateGroup(w http.ResponseWriter, r *http.Request) {
	account := s.requireAccount(w, r)
	if account == "" {
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeBadRequest(w, "reading request body: "+err.Error())
		return
	}

	_, persisted, err := s.orch.LocalCreate(account, body)
	if err != nil {
		renderError(w, err)
		return
	}
	writeRawXML(w, http.StatusOK, persisted)
}

// handleLocalRenameGroup rewrites a stored group's name from a minimal
// name-and-master document. The document's masterDeviceId must match the
// stored record's.
//
// POST /marge/streaming/account/{account}/group/{group}
func (s *Server) handleLocalRenameGroup(w http.ResponseWriter, r *http.Request) {
	account := s.requireAccount(w, r)
	if account == "" {
		return
	}
	id := chi.URLParam(r, "group")

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeBadRequest(w, "reading request body: "+err.Error())
		return
	}
	patch, err := group.Parse(body)
	if err != nil {
		renderError(w, err)
		return
	}

	_, persisted, err := s.orch.LocalRename(account, id, patch.Name, patch.MasterDeviceID)
	if err != nil {
		renderError(w, err)
		return
	}
	writeRawXML(w, http.StatusOK, persisted)
}

// handleLocalDeleteGroup removes a stored group record without contacting
// any speaker.
//
// DELETE /marge/streaming/account/{account}/group/{group}
func (s *Server) handleLocalDeleteGroup(w http.ResponseWriter, r *http.Request) {
	account := s.requireAccount(w, r)
	if account == "" {
		return
	}
	id := chi.URLParam(r, "group")

	if err := s.orch.LocalDelete(account, id); err != nil {
		renderError(w, err)
		return
	}
	writeStatusDoc(w, http.StatusOK, fmt.Sprintf("Group %s deleted successfully", id))
}
