package registry

import "errors"

// Domain errors for the registry package.
//
// These errors can be checked using errors.Is() for error handling:
//
//	if errors.Is(err, registry.ErrDeviceNotFound) {
//	    // handle not found case
//	}
var (
	// ErrAccountNotFound is returned when an account namespace does not exist.
	ErrAccountNotFound = errors.New("registry: account not found")

	// ErrDeviceNotFound is returned when a device is unknown to the account.
	ErrDeviceNotFound = errors.New("registry: device not found")

	// ErrDeviceInfoCorrupt is returned when a device info document is present
	// but cannot be parsed or is missing required fields.
	ErrDeviceInfoCorrupt = errors.New("registry: device info corrupt")
)
