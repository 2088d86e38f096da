// Package redis provides connection helpers for go-redis/v9: URL-based
// configuration, startup retry, and a health probe.
//
// The presence tracker in pkg/presence uses the client produced here to
// decide whether the socket delivery channel can reach a user.
package redis
