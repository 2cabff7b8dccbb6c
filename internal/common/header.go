package common

// AuthorizationHeaderName is the HTTP header carrying the bearer token.
const AuthorizationHeaderName = "Authorization"

// AuthorizationMetadataKey is the gRPC metadata key carrying the bearer
// token. gRPC lowercases metadata keys.
const AuthorizationMetadataKey = "authorization"

// BearerScheme is the only accepted authorization scheme.
const BearerScheme = "Bearer"
