package state

import "github.com/soundbored/soundbored-go/internal/types"

// NewCurrentUser returns the container for the authenticated user. Set
// once per session load, cleared on logout or a 401.
func NewCurrentUser() *Container[types.User] {
	return New[types.User]("current user")
}

// NewAppInfo returns the container for server build metadata.
func NewAppInfo() *Container[types.AppInfo] {
	return New[types.AppInfo]("app info")
}
