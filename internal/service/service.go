// Package service contains the business logic.
//
// It sits between the handler and repository layers: it receives
// validated data from handlers, calls the storage collaborator, and turns
// storage failures into errors the error mapper understands.
package service
