// Package uploads drives many independent compress-then-upload pipelines and
// exposes their state to a presentation layer.
//
// # Overview
//
// An Orchestrator owns an ordered collection of upload records keyed by
// generated identifiers. Add creates a record per file and starts its
// pipeline in its own goroutine; Cancel and Retry act on a single record.
// List, Get and Progress return snapshots that are never modified after they
// are handed out.
//
// # Runs
//
// Every pipeline start (from Add or Retry) is a run with its own cancellation
// function and a generation number stored next to the record. Stages commit
// their results only while their run is still the record's current run, so a
// run superseded by Retry can never overwrite newer state.
//
// # Errors
//
// Commands never return errors. Failures surface as record status:
// common.ErrCanceled maps to StatusCanceled, anything else to StatusError.
package uploads
