// Package websocket streams solver progress to connected clients.
//
// A Hub tracks clients grouped by solve ID. While a tracked solve runs,
// each BFS layer produces a progress event broadcast to the solve's
// clients; the finished record is broadcast as a final message. Clients
// connect through the API server's /ws endpoint with a solve query
// parameter.
package websocket
