package common

// AccessTokenHeaderName is the gRPC metadata key used to carry the
// access token on outbound requests.
const AccessTokenHeaderName = "access_token"

// Keys of the client-side metadata table.
const (
	MetaUsername     = "username"
	MetaSalt         = "salt"
	MetaVerifier     = "verifier"
	MetaOwnerID      = "owner_id"
	MetaLastSyncedAt = "last_synced_at"
)
