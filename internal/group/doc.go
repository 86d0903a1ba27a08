// Package group implements the stereo-group lifecycle for Soundcork.
//
// A stereo group pairs two speakers into synchronized left/right channel
// playback. The pairing lives in two places that must agree: the
// authoritative local record store, and the independent control endpoints
// of the two physical speakers. This package owns keeping them consistent.
//
// # Architecture
//
//	┌───────────────────────────────────────────────────────────────────┐
//	│                          Orchestrator                             │
//	│    create / rename / remove / status flows, two-box fan-out       │
//	└───────┬─────────────────────┬─────────────────────┬───────────────┘
//	        │                     │                     │
//	        ▼                     ▼                     ▼
//	┌──────────────┐      ┌──────────────┐      ┌──────────────┐
//	│    Store     │      │  DeviceGate  │      │  BoxCaller   │
//	│ (store.go)   │      │  (registry)  │      │ (box client) │
//	│              │      │              │      │              │
//	│ Group_*.xml  │      │ device info, │      │ addGroup     │
//	│ per account, │      │ type checks  │      │ updateGroup  │
//	│ id drawing   │      │              │      │ removeGroup  │
//	└──────────────┘      └──────────────┘      └──────────────┘
//
// # Key Types
//
//   - Group: A stereo pairing record (id, name, master, two roles)
//   - Store: Filesystem repository of group records, scoped per account
//   - Orchestrator: Composes store, gate, and boxes into the four flows
//
// # Consistency model
//
// Create and rename persist locally first and fan out to the speakers
// second; a remote rejection afterwards is reported but never rolled back,
// so the local record can outlive a speaker's agreement. Remove inverts the
// order: the speaker must report a disbanded group before the local record
// is deleted. These orderings are part of the external contract and are
// pinned down by tests, not smoothed over.
//
// The store's per-account lock makes create's check-then-write sequence a
// single exclusion region; without it two concurrent creates can both claim
// the same device. Record writes are plain whole-file overwrites, so scans
// treat unparsable files as absent instead of failing the directory.
//
// # Usage
//
//	store := group.NewStore(cfg.Store.DataDir, log)
//	orch := group.NewOrchestrator(store, reg, boxClient, log)
//
//	created, err := orch.CreateGroup(ctx, "acct1", "dev1", "dev2")
//	if errors.Is(err, group.ErrBoxRejected) {
//	    // the record exists locally; a speaker disagreed
//	}
package group
