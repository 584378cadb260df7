// Package client talks to the swappool server over gRPC.
//
// GRPCClient keeps one connection and the current session. An interceptor
// attaches the access token to every call; when the server reports the
// token expired and the session was started from a device secret, the
// session is restarted with the same secret and the call retried once.
// Identities derive from the secret, so the user keeps their uploads.
//
// gRPC status codes are mapped onto the sentinel errors in errors.go,
// callers match them with errors.Is.
package client
