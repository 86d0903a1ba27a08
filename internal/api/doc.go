// Package api provides the HTTP service surface for Soundcork's stereo
// group subsystem.
//
// Two route families are exposed. The marge routes are device-facing and
// operate on the local record store only: speakers query their own pairing
// status and push already-built group documents. The service routes are
// operator-facing and drive the full flows, including the fan-out to the
// speakers' own control endpoints.
//
//	client                    api.Server                  group.Orchestrator
//	  |                           |                               |
//	  |  GET /service/.../creategroup?master=&slave=              |
//	  |-------------------------->|  CreateGroup(ctx, ...)        |
//	  |                           |------------------------------>|
//	  |                           |        <status>GROUP_OK</status>
//	  |<--------------------------|                               |
//	  |                           |                               |
//	  |  GET /marge/.../device/{device}/group                     |
//	  |-------------------------->|  DeviceGroupStatus(...)       |
//	  |                           |------------------------------>|
//	  |          stored document or <group/>                      |
//	  |<--------------------------|                               |
//
// Every response body is XML. Errors render as <error>message</error>
// documents; flow outcomes render as <status>...</status> documents,
// matching what the speakers themselves emit.
//
// The server follows the same lifecycle pattern as the rest of the system:
//
//	server, err := api.New(deps)
//	server.Start(ctx)
//	defer server.Close()
//
// Thread Safety: All methods are safe for concurrent use from multiple goroutines.
package api
