/*
Package server answers word transformation requests over msgpack IPC.

Clients write msgpack maps to stdin and read one msgpack map per request
from stdout. Every message carries an ID which is echoed back. Logs go to
stderr only.

Solve requests name a start and an end word, and may bring their own costs:

	{"id": "q1", "action": "solve", "s": "cat", "e": "dog"}
	{"id": "q2", "s": "cat", "e": "act", "costs": {"a": 10, "d": 10, "c": 10, "g": 1}}

The action defaults to solve. The answer holds the cost (-1 when there is
no transformation), the number of expanded words, the time taken in
microseconds and whether it came from the cache:

	{"id": "q1", "f": true, "c": 3, "x": 12, "t": 95, "h": false}

Other actions:

	{"id": "h1", "action": "health"}    -> {"id": "h1", "status": "ok"}
	{"id": "i1", "action": "get_info"}  -> dictionary size and active costs

Failed requests get {"id", "e": message, "c": code} where code is 400 for
malformed requests, 404 for words missing from the dictionary and 500 for
internal errors.

Requests are processed one at a time, in order.
*/
package server

import "github.com/bastiangx/wordcost/pkg/morph"

// Actions understood by the server.
const (
	ActionSolve  = "solve"
	ActionHealth = "health"
	ActionInfo   = "get_info"
)

// Error codes.
const (
	CodeBadRequest = 400
	CodeNotFound   = 404
	CodeInternal   = 500
)

// Request is any incoming message. Start and End are only used by solve.
type Request struct {
	ID     string           `msgpack:"id"`
	Action string           `msgpack:"action,omitempty"`
	Start  string           `msgpack:"s,omitempty"`
	End    string           `msgpack:"e,omitempty"`
	Costs  *morph.CostModel `msgpack:"costs,omitempty"`
}

// SolveResponse is the answer to a solve request.
type SolveResponse struct {
	ID        string `msgpack:"id"`
	Found     bool   `msgpack:"f"`
	Cost      int    `msgpack:"c"`
	Expanded  int    `msgpack:"x"`
	TimeTaken int64  `msgpack:"t"`
	CacheHit  bool   `msgpack:"h"`
}

// StatusResponse answers health checks and announces readiness.
type StatusResponse struct {
	ID     string `msgpack:"id,omitempty"`
	Status string `msgpack:"status"`
}

// InfoResponse describes the loaded dictionary and search settings.
type InfoResponse struct {
	ID         string          `msgpack:"id"`
	Status     string          `msgpack:"status"`
	Words      int             `msgpack:"words"`
	Classes    int             `msgpack:"classes"`
	Costs      morph.CostModel `msgpack:"costs"`
	Heuristic  string          `msgpack:"heuristic"`
	EarlyBreak bool            `msgpack:"early_break"`
	Cached     int             `msgpack:"cached,omitempty"`
	Requests   int             `msgpack:"requests"`
}

// ErrorResponse holds basic error information for failed requests
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
