package api

import (
	"errors"
	"net/http"

	"github.com/soundcork/soundcork/internal/group"
)

// boxStatusOK and boxStatusError are the outcome markers the speakers
// themselves use; the service routes echo them so existing tooling can
// treat this surface and the speakers interchangeably.
const (
	boxStatusOK    = "GROUP_OK"
	boxStatusError = "GROUP_ERROR"
)

// handleCreateGroup runs the full create flow: local record first, then
// addGroup fanned out to both speakers.
//
// GET /service/account/{account}/creategroup?master=&slave=
func (s *Server) handleCreateGroup(w http.ResponseWriter, r *http.Request) {
	account := s.requireAccount(w, r)
	if account == "" {
		return
	}

	master := r.URL.Query().Get("master")
	slave := r.URL.Query().Get("slave")
	if master == "" || slave == "" {
		writeBadRequest(w, "master and slave query parameters are required")
		return
	}

	_, err := s.orch.CreateGroup(r.Context(), account, master, slave)
	s.renderFlowOutcome(w, err)
}

// handleModGroup runs the full rename flow against a group referenced by
// id or by name.
//
// GET /service/account/{account}/modgroup?newname=&groupid=|name=
func (s *Server) handleModGroup(w http.ResponseWriter, r *http.Request) {
	account := s.requireAccount(w, r)
	if account == "" {
		return
	}

	newName := r.URL.Query().Get("newname")
	if newName == "" {
		writeBadRequest(w, "newname query parameter is required")
		return
	}
	ref, ok := groupReference(w, r)
	if !ok {
		return
	}

	_, err := s.orch.RenameGroup(r.Context(), account, ref, newName)
	s.renderFlowOutcome(w, err)
}

// handleRemoveGroup runs the full remove flow: disband on the speaker,
// then delete the local record.
//
// GET /service/account/{account}/removegroup?groupid=|name=
func (s *Server) handleRemoveGroup(w http.ResponseWriter, r *http.Request) {
	account := s.requireAccount(w, r)
	if account == "" {
		return
	}

	ref, ok := groupReference(w, r)
	if !ok {
		return
	}

	err := s.orch.RemoveGroup(r.Context(), account, ref)
	s.renderFlowOutcome(w, err)
}

// groupReference extracts the group reference from exactly one of the
// groupid and name query parameters. Zero or both is a client error.
func groupReference(w http.ResponseWriter, r *http.Request) (string, bool) {
	groupID := r.URL.Query().Get("groupid")
	name := r.URL.Query().Get("name")
	switch {
	case groupID != "" && name != "":
		writeBadRequest(w, "groupid and name query parameters are mutually exclusive")
		return "", false
	case groupID != "":
		return groupID, true
	case name != "":
		return name, true
	default:
		writeBadRequest(w, "either the groupid or the name query parameter is required")
		return "", false
	}
}

// renderFlowOutcome writes the flow result in the speakers' own status
// vocabulary. A box rejection after a successful local phase is GROUP_ERROR;
// local-phase failures keep their descriptive <error> documents.
func (s *Server) renderFlowOutcome(w http.ResponseWriter, err error) {
	switch {
	case err == nil:
		writeStatusDoc(w, http.StatusOK, boxStatusOK)
	case errors.Is(err, group.ErrBoxRejected):
		writeStatusDoc(w, http.StatusInternalServerError, boxStatusError)
	default:
		renderError(w, err)
	}
}
