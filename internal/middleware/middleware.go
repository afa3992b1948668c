// Package middleware stores global middleware.
//
// These intercept requests to handle cross-cutting concerns such as
// request ids, request logging, metrics, CORS, rate limiting, tracing, panic
// recovery and the final error-to-response mapping.
package middleware
