package constants

// SessionCookieName is the name of the session cookie.
const SessionCookieName = "collab_session"

// ContextKeyUserID is the key used for the authenticated user ID in both the
// session and the request context.
const ContextKeyUserID = "user_id"

// ContextKeySessionKey is the key for the per-session dashboard snapshot key.
const ContextKeySessionKey = "session_key"

// ContextKeyMemberID is the key for the member ID resolved from the route.
const ContextKeyMemberID = "member_id"

// MinPasswordLength is the minimum accepted password length at signup.
const MinPasswordLength = 8

// Pagination bounds
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// MaxDraftSuggestions caps how many suggestions a single AI draft may produce.
const MaxDraftSuggestions = 10
