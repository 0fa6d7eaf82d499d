package server

import "encoding/json"

// Request asks for one conversion. Args is the operation's JSON argument
// object; see operations.go for the field names of each operation.
type Request struct {
	ID   string          `json:"id,omitempty"`
	Op   string          `json:"op"`
	Args json.RawMessage `json:"args,omitempty"`
}

// Response answers one Request. Exactly one of Result and Error is set.
type Response struct {
	ID     string          `json:"id"`
	Op     string          `json:"op"`
	Result json.RawMessage `json:"result,omitempty"`
	Error  string          `json:"error,omitempty"`
}

type errorBody struct {
	Error string `json:"error"`
}
