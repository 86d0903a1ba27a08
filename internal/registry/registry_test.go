package registry

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/soundcork/soundcork/internal/infrastructure/logging"
)

const eligibleType = "SoundTouch 10"

// seedDevice writes a DeviceInfo.xml for a device under the test data dir.
func seedDevice(t *testing.T, dataDir, account, device, deviceType, ip string) {
	t.Helper()

	deviceDir := filepath.Join(AccountDevicesDir(dataDir, account), device)
	if err := os.MkdirAll(deviceDir, 0755); err != nil {
		t.Fatalf("failed to create device dir: %v", err)
	}

	doc := fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<info deviceID="%s">
  <name>%s speaker</name>
  <type>%s</type>
  <moduleType>sm2</moduleType>
  <components>
    <component>
      <componentCategory>SCM</componentCategory>
      <softwareVersion>27.0.6</softwareVersion>
      <serialNumber>SCM-%s</serialNumber>
    </component>
    <component>
      <componentCategory>PackagedProduct</componentCategory>
      <serialNumber>PP-%s</serialNumber>
    </component>
  </components>
  <networkInfo type="SCM">
    <ipAddress>%s</ipAddress>
  </networkInfo>
  <networkInfo type="SMSC">
    <ipAddress>0.0.0.0</ipAddress>
  </networkInfo>
</info>
`, device, device, deviceType, device, device, ip)

	if err := os.WriteFile(filepath.Join(deviceDir, "DeviceInfo.xml"), []byte(doc), 0644); err != nil {
		t.Fatalf("failed to write device info: %v", err)
	}
}

func newTestRegistry(t *testing.T) (*Registry, string) {
	t.Helper()

	dataDir := t.TempDir()
	return New(dataDir, eligibleType, logging.Default()), dataDir
}

func TestRegistry_AccountExists(t *testing.T) {
	reg, dataDir := newTestRegistry(t)
	seedDevice(t, dataDir, "acct1", "dev1", eligibleType, "10.0.0.5")

	if !reg.AccountExists("acct1") {
		t.Error("AccountExists(acct1) = false, want true")
	}
	if reg.AccountExists("missing") {
		t.Error("AccountExists(missing) = true, want false")
	}
}

func TestRegistry_DeviceExists(t *testing.T) {
	reg, dataDir := newTestRegistry(t)
	seedDevice(t, dataDir, "acct1", "dev1", eligibleType, "10.0.0.5")

	if !reg.DeviceExists("acct1", "dev1") {
		t.Error("DeviceExists(acct1, dev1) = false, want true")
	}
	if reg.DeviceExists("acct1", "dev2") {
		t.Error("DeviceExists(acct1, dev2) = true, want false")
	}
}

func TestRegistry_GetDeviceInfo(t *testing.T) {
	reg, dataDir := newTestRegistry(t)
	seedDevice(t, dataDir, "acct1", "dev1", eligibleType, "10.0.0.5")

	info, err := reg.GetDeviceInfo("acct1", "dev1")
	if err != nil {
		t.Fatalf("GetDeviceInfo() error = %v", err)
	}

	if info.ID != "dev1" {
		t.Errorf("ID = %q, want %q", info.ID, "dev1")
	}
	if info.Name != "dev1 speaker" {
		t.Errorf("Name = %q, want %q", info.Name, "dev1 speaker")
	}
	if info.IPAddress != "10.0.0.5" {
		t.Errorf("IPAddress = %q, want %q", info.IPAddress, "10.0.0.5")
	}
	if info.FirmwareVersion != "27.0.6" {
		t.Errorf("FirmwareVersion = %q, want %q", info.FirmwareVersion, "27.0.6")
	}
	if info.DeviceSerial != "SCM-dev1" {
		t.Errorf("DeviceSerial = %q, want %q", info.DeviceSerial, "SCM-dev1")
	}
	if info.ProductSerial != "PP-dev1" {
		t.Errorf("ProductSerial = %q, want %q", info.ProductSerial, "PP-dev1")
	}
	if info.ProductCode() != eligibleType+" sm2" {
		t.Errorf("ProductCode() = %q, want %q", info.ProductCode(), eligibleType+" sm2")
	}
}

func TestRegistry_GetDeviceInfo_NotFound(t *testing.T) {
	reg, _ := newTestRegistry(t)

	_, err := reg.GetDeviceInfo("acct1", "ghost")
	if !errors.Is(err, ErrDeviceNotFound) {
		t.Errorf("GetDeviceInfo() error = %v, want ErrDeviceNotFound", err)
	}
}

func TestRegistry_GetDeviceInfo_Corrupt(t *testing.T) {
	reg, dataDir := newTestRegistry(t)

	deviceDir := filepath.Join(AccountDevicesDir(dataDir, "acct1"), "dev1")
	if err := os.MkdirAll(deviceDir, 0755); err != nil {
		t.Fatalf("failed to create device dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(deviceDir, "DeviceInfo.xml"), []byte("<info deviceID='dev1'><name>trunc"), 0644); err != nil {
		t.Fatalf("failed to write device info: %v", err)
	}

	_, err := reg.GetDeviceInfo("acct1", "dev1")
	if !errors.Is(err, ErrDeviceInfoCorrupt) {
		t.Errorf("GetDeviceInfo() error = %v, want ErrDeviceInfoCorrupt", err)
	}
}

func TestRegistry_IsEligibleType(t *testing.T) {
	reg, dataDir := newTestRegistry(t)
	seedDevice(t, dataDir, "acct1", "dev1", eligibleType, "10.0.0.5")
	seedDevice(t, dataDir, "acct1", "dev2", "SoundTouch 300", "10.0.0.6")

	if !reg.IsEligibleType("acct1", "dev1") {
		t.Error("IsEligibleType(dev1) = false, want true")
	}
	if reg.IsEligibleType("acct1", "dev2") {
		t.Error("IsEligibleType(dev2) = true, want false")
	}
	if reg.IsEligibleType("acct1", "ghost") {
		t.Error("IsEligibleType(ghost) = true, want false")
	}
}
