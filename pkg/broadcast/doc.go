// Package broadcast provides type-safe one-to-many message delivery with
// subscriber management and buffering.
//
// The socket delivery channel broadcasts notifications through a
// Broadcaster[notify.Notification]; transport handlers (SSE, WebSocket)
// subscribe to it and stream messages to connected clients.
//
//	broadcaster := broadcast.NewMemoryBroadcaster[string](10)
//	defer broadcaster.Close()
//
//	sub := broadcaster.Subscribe(ctx)
//	defer sub.Close()
//
//	broadcaster.Broadcast(ctx, broadcast.Message[string]{Data: "hello"})
//	for msg := range sub.Receive(ctx) {
//		fmt.Println(msg.Data)
//	}
//
// The memory implementation cleans subscribers up when their context is
// cancelled, when their buffer overflows (slow consumers are dropped), or
// when the broadcaster is closed.
package broadcast
