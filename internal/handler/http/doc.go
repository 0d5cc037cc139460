// Package http is the REST transport of the sync server.
//
// Routes:
//
//	POST /api/user/register   create an account, returns a bearer token
//	POST /api/user/login      returns a bearer token
//	POST /api/sync/push       upload pending rows of one table
//	POST /api/sync/pull       download rows after a cursor
//	POST /api/sync/stats      per-table counters
//	GET  /api/version         build info
//
// Failed requests answer {"error": "<message>"} with one of the messages from
// package app.
package http
