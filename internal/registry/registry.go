package registry

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"

	"github.com/soundcork/soundcork/internal/infrastructure/logging"
)

const (
	// devicesDirName is the per-account subdirectory holding device and
	// group records.
	devicesDirName = "devices"

	// deviceInfoFile is the per-device info document filename.
	deviceInfoFile = "DeviceInfo.xml"
)

// AccountDir returns the directory owning an account's records.
func AccountDir(dataDir, account string) string {
	return filepath.Join(dataDir, account)
}

// AccountDevicesDir returns the directory holding an account's device
// directories and group record files.
func AccountDevicesDir(dataDir, account string) string {
	return filepath.Join(dataDir, account, devicesDirName)
}

// Registry is the filesystem-backed device and account registry.
//
// Each account is a directory under the data root; each device is a
// directory under the account's devices directory carrying a DeviceInfo.xml
// document. The registry only reads this tree; provisioning is handled
// elsewhere.
type Registry struct {
	dataDir      string
	eligibleType string
	logger       *logging.Logger
}

// New creates a registry over the given data directory.
//
// Parameters:
//   - dataDir: Root of the account/device record tree
//   - eligibleType: The one device model permitted to join stereo groups
//   - logger: Structured logger
//
// Returns:
//   - *Registry: Registry ready for use
func New(dataDir, eligibleType string, logger *logging.Logger) *Registry {
	return &Registry{
		dataDir:      dataDir,
		eligibleType: eligibleType,
		logger:       logger.With("component", "registry"),
	}
}

// AccountExists reports whether the account namespace exists.
func (r *Registry) AccountExists(account string) bool {
	info, err := os.Stat(AccountDir(r.dataDir, account))
	return err == nil && info.IsDir()
}

// DeviceExists reports whether the device is known to the account.
func (r *Registry) DeviceExists(account, device string) bool {
	info, err := os.Stat(filepath.Join(AccountDevicesDir(r.dataDir, account), device))
	return err == nil && info.IsDir()
}

// GetDeviceInfo reads and parses the device's info document.
//
// Parameters:
//   - account: Account namespace
//   - device: Device identifier
//
// Returns:
//   - *DeviceInfo: Parsed device info when found
//   - error: ErrDeviceNotFound if the document is absent,
//     ErrDeviceInfoCorrupt if it cannot be parsed or lacks required fields
func (r *Registry) GetDeviceInfo(account, device string) (*DeviceInfo, error) {
	data, err := os.ReadFile(r.deviceInfoPath(account, device))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrDeviceNotFound, device)
		}
		return nil, fmt.Errorf("reading device info for %s: %w", device, err)
	}

	var doc deviceInfoDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDeviceInfoCorrupt, device, err)
	}

	info := &DeviceInfo{
		ID:         doc.DeviceID,
		Name:       doc.Name,
		Type:       doc.Type,
		ModuleType: doc.ModuleType,
	}

	for _, component := range doc.Components {
		switch component.Category {
		case componentCategorySCM:
			info.FirmwareVersion = component.SoftwareVersion
			info.DeviceSerial = component.SerialNumber
		case componentCategoryProduct:
			info.ProductSerial = component.SerialNumber
		}
	}

	for _, network := range doc.Networks {
		if network.Type == componentCategorySCM {
			info.IPAddress = network.IPAddress
		}
	}

	if info.ID == "" || info.IPAddress == "" {
		return nil, fmt.Errorf("%w: %s: missing required fields", ErrDeviceInfoCorrupt, device)
	}

	return info, nil
}

// IsEligibleType reports whether the device is of the model permitted to
// participate in stereo groups. Unknown or unparsable devices are not
// eligible.
func (r *Registry) IsEligibleType(account, device string) bool {
	data, err := os.ReadFile(r.deviceInfoPath(account, device))
	if err != nil {
		return false
	}

	var doc deviceInfoDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		r.logger.Warn("unparsable device info during type check",
			"account", account,
			"device", device,
			"error", err,
		)
		return false
	}

	return doc.Type == r.eligibleType
}

// deviceInfoPath returns the path of the device's info document.
func (r *Registry) deviceInfoPath(account, device string) string {
	return filepath.Join(AccountDevicesDir(r.dataDir, account), device, deviceInfoFile)
}
