// Package api contains the HTTP handlers, request/response models, and the
// mapping from use-case errors onto status codes. Handlers stay thin: parse,
// validate, call a service, map the result.
package api
