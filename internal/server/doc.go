// Package server serves sampled curves over HTTP and streams animated
// surfaces to websocket clients.
//
//	GET /api/sample?mode=&view=&t=&T=&lambda=&w=&rot=
//	GET /api/warp?x=&y=&w=
//	GET /api/ranges
//	GET /api/snapshots
//	GET /api/snapshots/{id}
//	GET /ws
package server
