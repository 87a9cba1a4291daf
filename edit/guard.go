package edit

// Source is anything the navigation guard consults: trackers and editors
// report unsaved work and in-flight mutations.
type Source interface {
	HasUnsavedChanges() bool
	SaveInFlight() bool
}

// Decision is the guard's verdict. When navigation is denied, Reason
// explains why to the user.
type Decision struct {
	Allow  bool
	Reason string
}

// Guard wording. Navigation is blocked outright, not offered as a
// dismissable warning.
const (
	reasonUnsaved  = "You have unsaved changes. Please save or discard them before leaving."
	reasonInFlight = "You cannot leave while changes are being saved."
)

// CanDeactivate decides whether the current view may be left. Denies while
// any source has unsaved changes or a save/upload/delete in flight.
func CanDeactivate(sources ...Source) Decision {
	for _, src := range sources {
		if src.SaveInFlight() {
			return Decision{Allow: false, Reason: reasonInFlight}
		}
	}
	for _, src := range sources {
		if src.HasUnsavedChanges() {
			return Decision{Allow: false, Reason: reasonUnsaved}
		}
	}
	return Decision{Allow: true}
}
