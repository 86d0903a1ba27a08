package api

import (
	"encoding/xml"
	"errors"
	"net/http"

	"github.com/soundcork/soundcork/internal/group"
	"github.com/soundcork/soundcork/internal/registry"
)

// statusDocument is the <status>...</status> outcome envelope.
type statusDocument struct {
	XMLName xml.Name `xml:"status"`
	Message string   `xml:",chardata"`
}

// errorDocument is the <error>...</error> failure envelope.
type errorDocument struct {
	XMLName xml.Name `xml:"error"`
	Message string   `xml:",chardata"`
}

// contentTypeXML is set on every response this package writes.
const contentTypeXML = "application/xml; charset=utf-8"

// writeXML marshals v as an XML document with the standard declaration.
func writeXML(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", contentTypeXML)
	w.WriteHeader(status)
	body, err := xml.Marshal(v)
	if err != nil {
		return
	}
	//nolint:errcheck // Best-effort write to response; connection may be closed
	w.Write(append([]byte(xml.Header), body...))
}

// writeRawXML writes an already-serialized XML document verbatim.
func writeRawXML(w http.ResponseWriter, status int, doc []byte) {
	w.Header().Set("Content-Type", contentTypeXML)
	w.WriteHeader(status)
	//nolint:errcheck // Best-effort write to response; connection may be closed
	w.Write(doc)
}

// writeStatusDoc writes a <status>message</status> outcome document.
func writeStatusDoc(w http.ResponseWriter, status int, message string) {
	writeXML(w, status, statusDocument{Message: message})
}

// writeErrorDoc writes an <error>message</error> failure document.
func writeErrorDoc(w http.ResponseWriter, status int, message string) {
	writeXML(w, status, errorDocument{Message: message})
}

// writeBadRequest writes a 400 failure document.
func writeBadRequest(w http.ResponseWriter, message string) {
	writeErrorDoc(w, http.StatusBadRequest, message)
}

// writeInternalError writes a 500 failure document.
func writeInternalError(w http.ResponseWriter, message string) {
	writeErrorDoc(w, http.StatusInternalServerError, message)
}

// renderError maps a flow error onto an HTTP status and writes it as an
// <error> document. Unrecognized errors render as 500.
func renderError(w http.ResponseWriter, err error) {
	writeErrorDoc(w, statusForError(err), err.Error())
}

// statusForError picks the HTTP status for a known error kind.
func statusForError(err error) int {
	switch {
	case errors.Is(err, registry.ErrAccountNotFound),
		errors.Is(err, registry.ErrDeviceNotFound),
		errors.Is(err, group.ErrGroupNotFound):
		return http.StatusNotFound
	case errors.Is(err, group.ErrDeviceGrouped):
		return http.StatusConflict
	case errors.Is(err, group.ErrMalformedDocument),
		errors.Is(err, group.ErrMissingName),
		errors.Is(err, group.ErrMissingMaster),
		errors.Is(err, group.ErrNoRoleEntries),
		errors.Is(err, group.ErrMasterNotInRoles),
		errors.Is(err, group.ErrWrongMemberCount),
		errors.Is(err, group.ErrMasterMismatch),
		errors.Is(err, group.ErrIneligibleDevice):
		return http.StatusBadRequest
	default:
		// Store corruption, box rejections, and anything unexpected.
		return http.StatusInternalServerError
	}
}
