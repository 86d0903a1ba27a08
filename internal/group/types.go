package group

import "encoding/xml"

// Role is a channel assignment within a stereo pairing.
type Role string

const (
	// RoleLeft is the left channel, held by the master device.
	RoleLeft Role = "LEFT"
	// RoleRight is the right channel, held by the slave device.
	RoleRight Role = "RIGHT"
)

// UngroupedDocument is the canonical marker returned for a device that
// belongs to no group.
const UngroupedDocument = "<group/>"

// GroupRole is one member entry of a stereo pairing.
type GroupRole struct {
	DeviceID  string `xml:"deviceId"`
	Role      Role   `xml:"role"`
	IPAddress string `xml:"ipAddress"`
}

// Group is a stereo pairing record.
//
// ID is a 7-digit zero-padded numeric string, unique within an account's
// namespace, assigned at creation and immutable thereafter. Only Name may
// change after creation; the master and role entries are fixed for the
// lifetime of the pairing.
type Group struct { //nolint:revive // group.Group reads fine at call sites as a package qualifier
	XMLName         xml.Name    `xml:"group"`
	ID              string      `xml:"id,attr,omitempty"`
	Name            string      `xml:"name"`
	MasterDeviceID  string      `xml:"masterDeviceId"`
	Roles           []GroupRole `xml:"roles>groupRole"`
	SenderIPAddress string      `xml:"senderIPAddress,omitempty"`
}

// DeviceIDs returns the member device identifiers in role order, skipping
// blank entries.
func (g *Group) DeviceIDs() []string {
	ids := make([]string, 0, len(g.Roles))
	for _, role := range g.Roles {
		if role.DeviceID != "" {
			ids = append(ids, role.DeviceID)
		}
	}
	return ids
}

// Addresses returns the unique member addresses in role order, skipping
// blank entries.
func (g *Group) Addresses() []string {
	seen := make(map[string]struct{}, len(g.Roles))
	addrs := make([]string, 0, len(g.Roles))
	for _, role := range g.Roles {
		if role.IPAddress == "" {
			continue
		}
		if _, ok := seen[role.IPAddress]; ok {
			continue
		}
		seen[role.IPAddress] = struct{}{}
		addrs = append(addrs, role.IPAddress)
	}
	return addrs
}

// ContainsDevice reports whether the device is a member of the pairing.
func (g *Group) ContainsDevice(deviceID string) bool {
	for _, role := range g.Roles {
		if role.DeviceID == deviceID {
			return true
		}
	}
	return false
}
