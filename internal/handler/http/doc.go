// Package http implements the local JSON API a GUI process uses to drive the
// wallet.
//
// Read endpoints serve copies of the published wallet state; write endpoints
// delegate to the service layer. Request tracing, access logging and response
// compression are handled here before requests reach a handler.
package http
