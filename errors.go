package soundboard

import "github.com/soundbored/soundbored-go/internal/apierr"

// Error classification helpers, re-exported so callers compare against a
// single package.

// IsUnauthorized reports whether err means the session expired; callers
// should clear session state and route to login rather than showing an
// inline error.
func IsUnauthorized(err error) bool { return apierr.IsUnauthorized(err) }

// IsNotFound reports whether err means the entity no longer exists, e.g.
// a sound deleted concurrently.
func IsNotFound(err error) bool { return apierr.IsNotFound(err) }

// IsPrecondition reports whether err means a caller-side precondition
// failed, e.g. the user is not in a visible voice channel.
func IsPrecondition(err error) bool { return apierr.IsPrecondition(err) }

// IsConflict reports whether err means the bot-side state does not allow
// the operation, e.g. the bot is not connected to a voice channel.
func IsConflict(err error) bool { return apierr.IsConflict(err) }

// IsRetryable reports whether err may resolve on a retry (server or
// network failure).
func IsRetryable(err error) bool { return apierr.Retryable(err) }

// User-facing failure wording, mirroring the soundboard UI. Centralized
// here so every surface renders the same message per failure kind.
const (
	msgPlayNotVisible = "Failed to join you. Are you in a voice channel that is visible to the bot?"
	msgPlayNotInVoice = "The bot is currently not in a voice channel!"
	msgPlayNotFound   = "Sound not found. It might have been deleted or renamed."
	msgPlayGeneric    = "Unknown error playing the sound file."

	msgJoinGeneric  = "Unknown error joining a voice channel."
	msgLeaveNotIn   = "The bot is not in a voice channel."
	msgLeaveGeneric = "Unknown error leaving a voice channel."
)

// PlayErrorMessage maps a PlaySound failure to its user-facing message.
func PlayErrorMessage(err error) string {
	switch {
	case apierr.IsPrecondition(err):
		return msgPlayNotVisible
	case apierr.IsConflict(err):
		return msgPlayNotInVoice
	case apierr.IsNotFound(err):
		return msgPlayNotFound
	default:
		return msgPlayGeneric
	}
}

// JoinErrorMessage maps a JoinChannel failure to its user-facing message.
func JoinErrorMessage(err error) string {
	if apierr.IsPrecondition(err) {
		return msgPlayNotVisible
	}
	return msgJoinGeneric
}

// LeaveErrorMessage maps a LeaveChannel failure to its user-facing
// message.
func LeaveErrorMessage(err error) string {
	if apierr.IsConflict(err) {
		return msgLeaveNotIn
	}
	return msgLeaveGeneric
}
