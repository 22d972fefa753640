// Package events defines messages the app shell sends to its sections.
package events

import "github.com/caioricciuti/quicklook-landing/internal/release"

// Focus is sent to a section when it starts receiving keys
type Focus struct{}

// Blur is sent to a section when it stops receiving keys
type Blur struct{}

// ReleaseResolved carries the settled release view state to every section
type ReleaseResolved struct {
	State release.ViewState
}

// Status is a short note a section shows after an action
type Status struct {
	Note  string
	Error bool
}
