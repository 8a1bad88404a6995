// Package httpapi implements the HTTP request layer: an explicit middleware
// pipeline over the transport, plus typed clients for the auth and task
// surfaces of the REST backend.
//
// Pipeline order matters and is fixed by the composition root: auth
// decoration runs outermost, then bounded retry, then error normalization
// wrapping the raw transport. Loading bookkeeping wraps the whole chain.
package httpapi

import "net/http"

// RoundTripFunc executes a single HTTP exchange.
type RoundTripFunc func(*http.Request) (*http.Response, error)

// Middleware transforms a RoundTripFunc into another, wrapping behavior
// around it.
type Middleware func(next RoundTripFunc) RoundTripFunc

// Chain applies middlewares to base so that the first listed middleware is
// the outermost: Chain(base, a, b) runs a(b(base)).
func Chain(base RoundTripFunc, middlewares ...Middleware) RoundTripFunc {
	wrapped := base
	for i := len(middlewares) - 1; i >= 0; i-- {
		wrapped = middlewares[i](wrapped)
	}
	return wrapped
}
