// Package request defines the unit of work handed to the routing layer.
// The routing layer never interprets a request's parameters; they travel
// with the request for whichever backend finally serves it.
package request

// Request describes one unit of work to be routed.
//
// ID must be unique per request; hash-routed selection derives affinity
// from it. Type is the routing key that picks the service. Params carry
// opaque metadata (resolution, format, priority and the like).
type Request struct {
	ID     string
	Type   string
	Params map[string]string
}

// New creates a Request with the given id and routing type.
func New(id, requestType string, params map[string]string) *Request {
	return &Request{
		ID:     id,
		Type:   requestType,
		Params: params,
	}
}
