// Package logger provides a thin factory around log/slog plus typed attribute
// helpers for the identifiers that flow through notification dispatch
// (user id, notification id, channel id, event type).
//
// The factory supports environment presets and context extractors:
//
//	log := logger.New(
//	    logger.WithProduction("notifier"),
//	    logger.WithContextValue("request_id", requestIDKey),
//	)
//	log.InfoContext(ctx, "notification dispatched",
//	    logger.NotificationID(notif.ID),
//	    logger.UserID(notif.UserID),
//	    logger.ChannelID("email"),
//	)
//
// Attribute helpers return an empty Attr for nil values, which slog drops,
// so callers never need nil checks at the log site.
package logger
