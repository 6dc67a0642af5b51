package common

// AuthorizationHeaderName is the HTTP header that carries the access token
// on requests to protected routes.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix is accepted in front of the token but not required.
const BearerPrefix = "Bearer "
