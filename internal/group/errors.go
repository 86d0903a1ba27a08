package group

import "errors"

// Domain errors for the group package.
//
// These errors can be checked using errors.Is() for error handling:
//
//	if errors.Is(err, group.ErrGroupNotFound) {
//	    // handle not found case
//	}
var (
	// ErrMalformedDocument is returned when a group document cannot be parsed.
	ErrMalformedDocument = errors.New("group: malformed document")

	// ErrMissingName is returned when a group document has no name or a
	// blank name.
	ErrMissingName = errors.New("group: missing or empty name")

	// ErrMissingMaster is returned when a group document has no
	// masterDeviceId element.
	ErrMissingMaster = errors.New("group: missing masterDeviceId")

	// ErrNoRoleEntries is returned when a group document carries no role
	// entries with a device id.
	ErrNoRoleEntries = errors.New("group: no role entries")

	// ErrMasterNotInRoles is returned when the master device id is not one
	// of the role device ids.
	ErrMasterNotInRoles = errors.New("group: masterDeviceId must appear in roles")

	// ErrWrongMemberCount is returned by the create flow when a group does
	// not name exactly two distinct devices.
	ErrWrongMemberCount = errors.New("group: must contain exactly two distinct devices")

	// ErrGroupNotFound is returned when a group id does not exist.
	ErrGroupNotFound = errors.New("group: not found")

	// ErrGroupCorrupt is returned when a stored record is present but
	// unusable (unparsable, or missing fields a flow depends on).
	ErrGroupCorrupt = errors.New("group: stored record corrupt")

	// ErrDeviceGrouped is returned when a device already belongs to a group.
	ErrDeviceGrouped = errors.New("group: device already grouped")

	// ErrIneligibleDevice is returned when a device is not of the hardware
	// model permitted to join pairings.
	ErrIneligibleDevice = errors.New("group: device type not eligible")

	// ErrMasterMismatch is returned when a rename names a master other than
	// the stored one.
	ErrMasterMismatch = errors.New("group: masterDeviceId does not match stored master")

	// ErrBoxRejected is returned when a speaker rejects or fails a remote
	// group operation. For create and rename the local record still stands
	// when this is returned.
	ErrBoxRejected = errors.New("group: box rejected operation")
)
