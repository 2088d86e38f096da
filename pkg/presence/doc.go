// Package presence tracks which users currently hold a live real-time
// connection. Transport handlers mark users online while a socket or SSE
// stream is open; the socket delivery channel asks the tracker before
// attempting delivery and skips offline users.
//
// Two implementations are provided: a Redis-backed tracker whose marks
// expire by TTL (crashed clients converge to offline on their own) and an
// in-memory tracker for development and tests.
package presence
