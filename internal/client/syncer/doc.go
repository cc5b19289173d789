// Package syncer is the offline-first synchronization engine.
//
// Writer is the per-kind write path: every mutation lands in the local
// store first and is pushed to the server in the background when the
// device is online. Orchestrator runs sync cycles: the push phase of every
// kind completes before any pull phase starts, and pulled records replace
// local ones only when strictly newer (last write wins, ties keep local).
//
// All local store and remote calls run on one shared workerpool.Pool.
// Pool tasks are leaf I/O; coordination (waiting on futures, fan-out across
// kinds) happens on the calling goroutine.
//
// Pushed saves are unconditional overwrites on the server, so the system is
// eventually consistent rather than linearizable: a stale edit pushed after
// a newer remote edit replaces it until a device with the newer copy syncs
// again. Concurrent cycles are not serialized and may repeat remote calls;
// saves and deletes are idempotent.
package syncer
