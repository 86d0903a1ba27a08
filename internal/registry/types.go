package registry

import "encoding/xml"

// DeviceInfo describes a registered speaker as recorded in its info document.
// It is read-only from the grouping subsystem's perspective.
type DeviceInfo struct {
	ID              string
	Name            string
	Type            string
	ModuleType      string
	IPAddress       string
	FirmwareVersion string
	DeviceSerial    string
	ProductSerial   string
}

// ProductCode returns the combined type and module type label for the device.
func (d *DeviceInfo) ProductCode() string {
	return d.Type + " " + d.ModuleType
}

// deviceInfoDoc mirrors the on-disk DeviceInfo.xml structure.
type deviceInfoDoc struct {
	XMLName    xml.Name `xml:"info"`
	DeviceID   string   `xml:"deviceID,attr"`
	Name       string   `xml:"name"`
	Type       string   `xml:"type"`
	ModuleType string   `xml:"moduleType"`
	Components []struct {
		Category        string `xml:"componentCategory"`
		SoftwareVersion string `xml:"softwareVersion"`
		SerialNumber    string `xml:"serialNumber"`
	} `xml:"components>component"`
	Networks []struct {
		Type      string `xml:"type,attr"`
		IPAddress string `xml:"ipAddress"`
	} `xml:"networkInfo"`
}

// Component categories carried in the device info document. The SCM entry
// holds the firmware version and device serial, the PackagedProduct entry
// holds the product serial.
const (
	componentCategorySCM     = "SCM"
	componentCategoryProduct = "PackagedProduct"
)
