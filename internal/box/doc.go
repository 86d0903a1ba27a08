// Package box talks the speakers' own group-control protocol.
//
// Every speaker exposes a small HTTP surface on a fixed control port:
//
//	POST /addGroup     (full group document as body)
//	POST /updateGroup  (full or partial group document as body)
//	GET  /removeGroup  (no body)
//
// A successful addGroup response is HTTP 200 with a body containing the
// GROUP_OK marker. A successful removeGroup response is HTTP 200 with a
// body representing an empty group.
//
// Calls carry an independent per-call timeout (4 seconds by default) and
// are attempted exactly once; there is no retry policy in this layer.
// Transport failures are folded into the returned Result so the group
// orchestrator can aggregate outcomes from multiple speakers uniformly.
//
// # Usage
//
//	client := box.New(box.Config{Port: 8090, Timeout: 4 * time.Second}, log)
//	result := client.AddGroup(ctx, "10.0.0.5", groupXML)
//	if !result.OK() || !result.HasSuccessMarker() {
//	    // the speaker rejected the pairing
//	}
package box
