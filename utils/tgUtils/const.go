package tgUtils

const (
	MaxMessageLength = 4096

	InlineQueryFailureCacheTime = 2 // In seconds

	ErrBlockedByUser    = "Forbidden: bot was blocked by the user"
	ErrNotStartedByUser = "Forbidden: bot can't initiate conversation with a user"
	ErrReactionInvalid  = "Bad Request: REACTION_INVALID"
)
