package messages

// Shared error messages.
const (
	SyncInProgress       = "a sync is already running"
	NoCachedResponse     = "no cached response available"
	OverrideAlreadyThere = "an active override already exists for this username"
)
