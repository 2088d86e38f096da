// Package notify implements an in-app notification engine with pluggable
// delivery channels.
//
// The package separates three concerns. Storage persists notification
// records and read state. Channels deliver a notification to a recipient
// over one mechanism (in-app feed, email, webhook, realtime socket). The
// Dispatcher fans a notification out to every enabled channel that reports
// itself available, in parallel, with a per-channel timeout, and absorbs
// all delivery failures. The Trigger sits on top: it persists first, then
// dispatches in the background so business callers are never held by
// delivery.
//
// # Basic usage
//
//	storage := notify.NewMemoryStorage()
//	cfg := notify.DefaultDeliveryConfig()
//	channels := notify.DefaultChannels(cfg, notify.ChannelDeps{Logger: log})
//	dispatcher := notify.NewDispatcher(cfg, channels, notify.WithDispatchLogger(log))
//	trigger := notify.NewTrigger(storage, identity, dispatcher)
//
//	id, err := trigger.Notify(ctx, userID, "SYSTEM", "Welcome", "Your account is ready", nil)
//
// Out of the box only the in-app channel delivers. The other channels are
// always registered but stay inert until their dependencies (email sender,
// webhook endpoint, presence tracker) are supplied and the channel is
// enabled in the delivery configuration.
//
// # Broadcast
//
//	result, err := trigger.Broadcast(ctx, []string{"admin"}, actorID,
//	    "MAINTENANCE", "Scheduled downtime", "Sunday 02:00 UTC", nil)
//
// Broadcast resolves the audience through the Identity collaborator,
// persists one record per recipient, and dispatches in batches in the
// background. An audience that matches no users fails with
// ErrEmptyAudience.
//
// # Runtime registration
//
// Channels can be added, replaced, or toggled while the dispatcher is
// serving traffic:
//
//	dispatcher.RegisterChannel(customChannel, true)
//	dispatcher.SetChannelEnabled(notify.ChannelEmail, false)
//
// In-flight dispatches keep the channel set they started with.
package notify
