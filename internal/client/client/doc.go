// Package client contains the client-side transport of StudentHub.
//
// # Overview
//
// The package provides:
//  1. A transport contract (see Client) covering the account calls
//     (Register, GetSalt, Login), Ping, the document calls used by the sync
//     engine and snapshot presigning.
//  2. A gRPC implementation (GRPCClient) that injects the access token via an
//     interceptor, refreshes expired tokens once, applies the configured
//     request timeout and maps gRPC status codes to sentinel errors.
//  3. Collection, a typed view of one record kind on the server that the sync
//     engine uses as its remote.
//  4. Local persistence bootstrap (InitDatabase, RunMigrations) wiring an
//     SQLite database and applying embedded goose migrations.
//
// # Error Handling
//
// Transport conditions are exposed as ErrUnavailable, ErrUnauthorized and
// ErrAlreadyExists. Collection wraps failures with the sync sentinels from
// package common (ErrRemoteSaveFailed, ErrRemoteDeleteFailed,
// ErrRemoteFetchFailed) so both layers match with errors.Is.
package client
