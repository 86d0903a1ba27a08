package group

import (
	"fmt"
	"strings"
)

// Validate parses a group document and checks its structural and business
// rules, in order: parseability, presence and non-blankness of the name,
// presence of the master device id, presence of at least one role entry
// with a device id, and membership of the master among the role device ids.
//
// The exactly-two-members rule is deliberately not checked here; it belongs
// to the create flow (ValidateMemberCount), because the rename flow reuses
// this validator on documents that do not carry roles.
//
// Parameters:
//   - data: Raw XML group document
//
// Returns:
//   - *Group: Validated record
//   - error: One of ErrMalformedDocument, ErrMissingName, ErrMissingMaster,
//     ErrNoRoleEntries, ErrMasterNotInRoles
func Validate(data []byte) (*Group, error) {
	g, err := Parse(data)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(g.Name) == "" {
		return nil, ErrMissingName
	}

	if g.MasterDeviceID == "" {
		return nil, ErrMissingMaster
	}

	deviceIDs := g.DeviceIDs()
	if len(deviceIDs) == 0 {
		return nil, ErrNoRoleEntries
	}

	if !g.ContainsDevice(g.MasterDeviceID) {
		return nil, ErrMasterNotInRoles
	}

	return g, nil
}

// ValidateMemberCount enforces the create-flow rule that a pairing names
// exactly two distinct devices.
//
// Returns:
//   - error: ErrWrongMemberCount with the offending count, or nil
func ValidateMemberCount(g *Group) error {
	deviceIDs := g.DeviceIDs()
	if len(deviceIDs) != 2 {
		return fmt.Errorf("%w: got %d", ErrWrongMemberCount, len(deviceIDs))
	}
	if deviceIDs[0] == deviceIDs[1] {
		return fmt.Errorf("%w: %s appears twice", ErrWrongMemberCount, deviceIDs[0])
	}
	return nil
}
