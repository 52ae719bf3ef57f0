// Package common contains shared constants and sentinel errors used across
// Daybook components.
package common

// TokenExpiredMessage is the error body the server sends with a 401 when the
// access token is valid but expired. The client uses it to decide whether a
// refresh-and-retry is worth attempting.
const TokenExpiredMessage = "token expired"
