// Package api provides the REST API server for the solver.
//
// Endpoints:
//
//	POST   /api/solve                 solve a puzzle synchronously
//	POST   /api/solves                start a tracked solve run
//	GET    /api/solves                list solve records
//	GET    /api/solves/{id}           get one solve record
//	DELETE /api/solves/{id}           delete a solve record
//	GET    /api/puzzles               list puzzle definitions
//	POST   /api/puzzles               save a puzzle definition
//	GET    /api/puzzles/{name}        get one puzzle definition
//	GET    /api/puzzles/{name}/render get the rendered starting board
//	GET    /ws?solve=<id>             stream progress for a tracked solve
//
// All request and response bodies are JSON. Errors are returned as
// {"error": "..."} with an appropriate status code: 400 for invalid
// puzzles, 404 for unknown puzzles or solves, 500 otherwise.
package api
