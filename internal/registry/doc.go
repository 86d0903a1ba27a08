// Package registry provides the filesystem-backed device and account
// registry for Soundcork.
//
// The registry answers the narrow questions the grouping subsystem asks of
// the wider system: does this account exist, does this device belong to it,
// what is the device's network address, and is it of the one hardware model
// allowed to join a stereo pairing.
//
// # On-disk layout
//
//	<data_dir>/
//	  <account>/
//	    devices/
//	      <device_id>/
//	        DeviceInfo.xml
//	      Group_<id>.xml        (owned by the group store, not this package)
//
// # Key Types
//
//   - Registry: Read-only view over the tree above
//   - DeviceInfo: Parsed device info document
//
// # Usage
//
//	reg := registry.New(cfg.Store.DataDir, cfg.Devices.EligibleType, log)
//	info, err := reg.GetDeviceInfo("acct1", "dev1")
//	if errors.Is(err, registry.ErrDeviceNotFound) {
//	    // unknown device
//	}
//
// Device provisioning and discovery are out of scope; this package assumes
// the tree is maintained by the surrounding system.
package registry
