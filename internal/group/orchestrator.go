package group

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/soundcork/soundcork/internal/box"
	"github.com/soundcork/soundcork/internal/infrastructure/logging"
	"github.com/soundcork/soundcork/internal/registry"
)

// DeviceGate resolves device identity questions against the account
// registry. It is the narrow contract this subsystem consumes; the
// filesystem registry satisfies it.
type DeviceGate interface {
	AccountExists(account string) bool
	DeviceExists(account, device string) bool
	GetDeviceInfo(account, device string) (*registry.DeviceInfo, error)
	IsEligibleType(account, device string) bool
}

// BoxCaller issues group-control calls against a speaker's own endpoint.
type BoxCaller interface {
	AddGroup(ctx context.Context, ip, xmlBody string) box.Result
	UpdateGroup(ctx context.Context, ip, xmlBody string) box.Result
	RemoveGroup(ctx context.Context, ip string) box.Result
}

// Orchestrator composes the store, device gate, and box client into the
// create, rename, remove, and status-query flows.
//
// Flows that touch two speakers fan the calls out concurrently and wait for
// both before aggregating; one failing or timing out never cancels the
// other. Every remote call is attempted exactly once per invocation.
//
// Thread Safety:
//   - All methods are safe for concurrent use from multiple goroutines.
type Orchestrator struct {
	store  *Store
	gate   DeviceGate
	boxes  BoxCaller
	logger *logging.Logger
}

// NewOrchestrator creates an orchestrator over the given collaborators.
//
// Parameters:
//   - store: Group record store
//   - gate: Device/account registry
//   - boxes: Speaker protocol client
//   - logger: Structured logger
//
// Returns:
//   - *Orchestrator: Orchestrator ready for use
func NewOrchestrator(store *Store, gate DeviceGate, boxes BoxCaller, logger *logging.Logger) *Orchestrator {
	return &Orchestrator{
		store:  store,
		gate:   gate,
		boxes:  boxes,
		logger: logger.With("component", "orchestrator"),
	}
}

// CreateGroup pairs two speakers into a stereo group.
//
// Both devices are resolved through the gate, a group document is built
// with the master on LEFT and the slave on RIGHT, the record is validated
// and persisted locally, and only then is addGroup fanned out to both
// speakers concurrently. A local failure returns before any remote call is
// made, so a failed create never touches the physical devices.
//
// Overall success requires both speakers to answer HTTP 200 with the
// GROUP_OK marker. When a speaker rejects the pairing after the record was
// persisted, the record is NOT rolled back: the group stands locally even
// though the speakers disagree. ErrBoxRejected reports that state alongside
// the created record, and the divergence is flagged in the log.
//
// Parameters:
//   - ctx: Context for cancellation
//   - account: Account namespace
//   - masterID: Device to designate as the pairing's primary unit
//   - slaveID: Second member device
//
// Returns:
//   - *Group: The created record, also present on ErrBoxRejected
//   - error: registry.ErrDeviceNotFound, a validation error,
//     ErrDeviceGrouped, ErrIneligibleDevice, or ErrBoxRejected
func (o *Orchestrator) CreateGroup(ctx context.Context, account, masterID, slaveID string) (*Group, error) {
	masterInfo, err := o.gate.GetDeviceInfo(account, masterID)
	if err != nil {
		return nil, err
	}
	slaveInfo, err := o.gate.GetDeviceInfo(account, slaveID)
	if err != nil {
		return nil, err
	}

	draft := &Group{
		Name:           masterInfo.Name + " + " + slaveInfo.Name,
		MasterDeviceID: masterID,
		Roles: []GroupRole{
			{DeviceID: masterID, Role: RoleLeft, IPAddress: masterInfo.IPAddress},
			{DeviceID: slaveID, Role: RoleRight, IPAddress: slaveInfo.IPAddress},
		},
		SenderIPAddress: masterInfo.IPAddress,
	}
	doc, err := draft.Marshal()
	if err != nil {
		return nil, err
	}

	created, persisted, err := o.LocalCreate(account, doc)
	if err != nil {
		return nil, err
	}

	ips := []string{masterInfo.IPAddress, slaveInfo.IPAddress}
	results := make([]box.Result, len(ips))
	var fanout errgroup.Group
	for i, ip := range ips {
		fanout.Go(func() error {
			results[i] = o.boxes.AddGroup(ctx, ip, string(persisted))
			return nil
		})
	}
	fanout.Wait() //nolint:errcheck // closures never return an error; both calls always complete

	for i, result := range results {
		if !result.OK() || !result.HasSuccessMarker() {
			o.logger.Warn("group persisted locally but a box rejected the pairing, record kept",
				"account", account,
				"group", created.ID,
				"ip", ips[i],
				"status", result.Status,
				"error", result.Err,
			)
			return created, fmt.Errorf("%w: addGroup on %s: %s", ErrBoxRejected, ips[i], describeResult(result))
		}
	}

	o.logger.Info("stereo group created",
		"account", account,
		"group", created.ID,
		"master", masterID,
		"slave", slaveID,
	)
	return created, nil
}

// LocalCreate runs the validated local-create sub-flow: validate the
// document, require exactly two distinct members, reject devices that are
// already grouped or not of the eligible type, then assign a fresh id and
// persist. The membership check and the write run under the account lock as
// one exclusion region.
//
// Parameters:
//   - account: Account namespace
//   - doc: Id-less group document
//
// Returns:
//   - *Group: The persisted record with its assigned id
//   - []byte: The persisted document bytes
//   - error: A validation error, ErrDeviceGrouped, or ErrIneligibleDevice
func (o *Orchestrator) LocalCreate(account string, doc []byte) (*Group, []byte, error) {
	g, err := Validate(doc)
	if err != nil {
		return nil, nil, err
	}
	if err := ValidateMemberCount(g); err != nil {
		return nil, nil, err
	}

	var persisted []byte
	err = o.store.WithAccountLock(account, func() error {
		for _, deviceID := range g.DeviceIDs() {
			if groupedIn, ok := o.store.FindContaining(account, deviceID); ok {
				return fmt.Errorf("%w: device %s is already part of group %s", ErrDeviceGrouped, deviceID, groupedIn)
			}
		}
		for _, deviceID := range g.DeviceIDs() {
			if !o.gate.IsEligibleType(account, deviceID) {
				return fmt.Errorf("%w: device %s", ErrIneligibleDevice, deviceID)
			}
		}

		g.ID = o.store.GenerateID(account)
		var writeErr error
		persisted, writeErr = o.store.Write(account, g)
		return writeErr
	})
	if err != nil {
		return nil, nil, err
	}

	return g, persisted, nil
}

// RenameGroup changes a group's name locally and pushes the update to both
// member speakers.
//
// The stored record must carry exactly two recorded addresses; anything
// else is store corruption and fails before any remote call. Only the name
// field changes; master and roles are untouched. The fan-out succeeds when
// both speakers answer HTTP 200; the GROUP_OK marker is deliberately not
// required here, unlike create. A remote failure does not roll the rename
// back; the new name stands and ErrBoxRejected reports the divergence.
//
// Parameters:
//   - ctx: Context for cancellation
//   - account: Account namespace
//   - idOrName: Group id, or a group name to resolve
//   - newName: Replacement name, must be non-blank
//
// Returns:
//   - *Group: The renamed record, also present on ErrBoxRejected
//   - error: ErrGroupNotFound, ErrGroupCorrupt, ErrMissingName, or
//     ErrBoxRejected
func (o *Orchestrator) RenameGroup(ctx context.Context, account, idOrName, newName string) (*Group, error) {
	if strings.TrimSpace(newName) == "" {
		return nil, ErrMissingName
	}

	id, err := o.resolveID(account, idOrName)
	if err != nil {
		return nil, err
	}

	stored, err := o.store.Read(account, id)
	if err != nil {
		return nil, err
	}
	if stored.MasterDeviceID == "" {
		return nil, fmt.Errorf("%w: group %s has no masterDeviceId", ErrGroupCorrupt, id)
	}
	ips := stored.Addresses()
	if len(ips) != 2 {
		return nil, fmt.Errorf("%w: group %s has %d recorded addresses, want 2", ErrGroupCorrupt, id, len(ips))
	}

	renamed, persisted, err := o.LocalRename(account, id, newName, stored.MasterDeviceID)
	if err != nil {
		return nil, err
	}

	results := make([]box.Result, len(ips))
	var fanout errgroup.Group
	for i, ip := range ips {
		fanout.Go(func() error {
			results[i] = o.boxes.UpdateGroup(ctx, ip, string(persisted))
			return nil
		})
	}
	fanout.Wait() //nolint:errcheck // closures never return an error; both calls always complete

	for i, result := range results {
		if !result.OK() {
			o.logger.Warn("group renamed locally but a box update failed, name change stands",
				"account", account,
				"group", id,
				"ip", ips[i],
				"status", result.Status,
				"error", result.Err,
			)
			return renamed, fmt.Errorf("%w: updateGroup on %s: %s", ErrBoxRejected, ips[i], describeResult(result))
		}
	}

	o.logger.Info("stereo group renamed",
		"account", account,
		"group", id,
		"name", newName,
	)
	return renamed, nil
}

// LocalRename rewrites only the name field of a stored record. The caller's
// master device id must match the stored one.
//
// Parameters:
//   - account: Account namespace
//   - id: Group identifier
//   - newName: Replacement name, must be non-blank
//   - masterID: Master device id the caller believes the group has
//
// Returns:
//   - *Group: The renamed record
//   - []byte: The persisted document bytes
//   - error: ErrGroupNotFound, ErrGroupCorrupt, ErrMissingName,
//     ErrMissingMaster, or ErrMasterMismatch
func (o *Orchestrator) LocalRename(account, id, newName, masterID string) (*Group, []byte, error) {
	if strings.TrimSpace(newName) == "" {
		return nil, nil, ErrMissingName
	}
	if masterID == "" {
		return nil, nil, ErrMissingMaster
	}

	var renamed *Group
	var persisted []byte
	err := o.store.WithAccountLock(account, func() error {
		g, err := o.store.Read(account, id)
		if err != nil {
			return err
		}
		if g.MasterDeviceID == "" {
			return fmt.Errorf("%w: group %s has no masterDeviceId", ErrGroupCorrupt, id)
		}
		if g.MasterDeviceID != masterID {
			return fmt.Errorf("%w: group %s", ErrMasterMismatch, id)
		}

		g.Name = newName
		persisted, err = o.store.Write(account, g)
		renamed = g
		return err
	})
	if err != nil {
		return nil, nil, err
	}

	return renamed, persisted, nil
}

// RemoveGroup disbands a pairing on its speaker, then deletes the local
// record.
//
// The single remote call targets the stored sender address, falling back to
// the first recorded role address. The local record is deleted only when
// the speaker reports an empty group (HTTP 200 with a disbanded-group
// body); on any other outcome the record is preserved and the error
// surfaces. This is the one flow where remote success gates local
// mutation.
//
// Parameters:
//   - ctx: Context for cancellation
//   - account: Account namespace
//   - idOrName: Group id, or a group name to resolve
//
// Returns:
//   - error: ErrGroupNotFound, ErrGroupCorrupt, or ErrBoxRejected
func (o *Orchestrator) RemoveGroup(ctx context.Context, account, idOrName string) error {
	id, err := o.resolveID(account, idOrName)
	if err != nil {
		return err
	}

	stored, err := o.store.Read(account, id)
	if err != nil {
		return err
	}

	target := stored.SenderIPAddress
	if target == "" {
		if ips := stored.Addresses(); len(ips) > 0 {
			target = ips[0]
		}
	}
	if target == "" {
		return fmt.Errorf("%w: group %s has no usable target address", ErrGroupCorrupt, id)
	}

	result := o.boxes.RemoveGroup(ctx, target)
	if !result.OK() || !box.IsEmptyGroupBody(result.Body) {
		return fmt.Errorf("%w: removeGroup on %s: %s", ErrBoxRejected, target, describeResult(result))
	}

	if err := o.store.Delete(account, id); err != nil {
		return err
	}

	o.logger.Info("stereo group removed",
		"account", account,
		"group", id,
	)
	return nil
}

// DeviceGroupStatus reports a device's pairing status.
//
// The device must exist and be of the eligible type. An ungrouped device
// yields the canonical ungrouped marker; a grouped one yields its stored
// group document verbatim, not a reconstruction.
//
// Parameters:
//   - account: Account namespace
//   - deviceID: Device identifier
//
// Returns:
//   - []byte: The ungrouped marker or the stored group document
//   - error: registry.ErrDeviceNotFound or ErrIneligibleDevice
func (o *Orchestrator) DeviceGroupStatus(account, deviceID string) ([]byte, error) {
	if !o.gate.DeviceExists(account, deviceID) {
		return nil, fmt.Errorf("%w: %s", registry.ErrDeviceNotFound, deviceID)
	}
	if !o.gate.IsEligibleType(account, deviceID) {
		return nil, fmt.Errorf("%w: device %s", ErrIneligibleDevice, deviceID)
	}

	id, ok := o.store.FindContaining(account, deviceID)
	if !ok {
		return []byte(UngroupedDocument), nil
	}
	return o.store.ReadRaw(account, id)
}

// LocalDelete removes a group record without touching any speaker.
func (o *Orchestrator) LocalDelete(account, id string) error {
	return o.store.Delete(account, id)
}

// resolveID turns a group reference into a concrete id: a direct id match
// wins, otherwise the reference is treated as a name.
func (o *Orchestrator) resolveID(account, idOrName string) (string, error) {
	if o.store.Exists(account, idOrName) {
		return idOrName, nil
	}
	if id, ok := o.store.ResolveByName(account, idOrName); ok {
		return id, nil
	}
	return "", fmt.Errorf("%w: %s", ErrGroupNotFound, idOrName)
}

// describeResult renders a box result for error messages.
func describeResult(r box.Result) string {
	if r.Err != nil {
		return r.Err.Error()
	}
	return fmt.Sprintf("HTTP %d %s", r.Status, strings.TrimSpace(r.Body))
}
