package ports

import "crownhold/internal/domain/royal"

// NotificationSink is fire-and-forget: implementations log failures and
// never surface them to the interactive caller.
type NotificationSink interface {
	NotifyDethroned(oldName, newName, reason string)
	PublishNews(message string)
}

// StatePublisher pushes a complete monarch snapshot toward the shared
// store without blocking the caller. Writes are at-most-once; a dropped or
// reordered publish must never leave the store half-updated, so callers
// always hand over a full self-consistent snapshot.
type StatePublisher interface {
	Publish(snapshot royal.Monarch)
}
