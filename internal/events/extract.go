// Package events declares the payloads published on the eventbus by the
// extraction service.
package events

import "time"

// ExtractStart is emitted before a field extraction runs.
type ExtractStart struct {
	Query         string
	OperationName string
	Field         string
	View          string
}

// ExtractFinish is emitted after a field extraction completes. Fields
// counts the entries in the produced view; Err is the query parse
// error, if any.
type ExtractFinish struct {
	Query         string
	OperationName string
	Field         string
	View          string
	Fields        int
	Err           error
	Duration      time.Duration
}
