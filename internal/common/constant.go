package common

// AccessTokenHeaderName is the gRPC metadata key used to carry the
// access token on inbound and outbound requests.
const AccessTokenHeaderName = "access_token"

// ExhaustedMessage is shown to viewers when the pool has nothing for them.
const ExhaustedMessage = "nothing new to swap right now, try again later"
