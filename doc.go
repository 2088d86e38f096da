// Package notifykit wires the notification engine from environment
// configuration.
//
// The subpackages under pkg/ are independently usable; this package is the
// batteries-included composition root for services that just want a working
// stack:
//
//	engine, err := notifykit.New(ctx, identity)
//	if err != nil {
//	    return err
//	}
//	defer engine.Close()
//
//	id, err := engine.Trigger.Notify(ctx, userID, "SYSTEM", "Welcome", "Hello", nil)
//
// Infrastructure is opt-in through env vars: PG_CONN_URL turns on Postgres
// storage with migrations, REDIS_URL turns on shared presence tracking,
// POSTMARK_SERVER_TOKEN turns on the email channel. With none of them set
// the engine runs fully in memory, which is the intended mode for local
// development and tests.
package notifykit
