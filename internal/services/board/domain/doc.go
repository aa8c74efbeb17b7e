// Package domain holds the personnel board model, the visibility and status
// rules derived from it, and the board service that applies mutations.
//
// Request status is never set directly: every path that changes a checklist
// recomputes it with DeriveStatus. Task changes are gated by CanModify inside
// the service, so transports cannot bypass department ownership.
package domain
