// Package cli provides the interactive gophupload command-line client.
//
// It wires configuration, the image compressor, an S3 transport and the upload
// orchestrator behind a small REPL. Files named on the command line are queued
// immediately; more can be added, canceled or retried while earlier uploads
// are still running.
//
// Commands:
//   - add <path|dir|glob>...  queue files
//   - (l)ist                  show every upload
//   - cancel <id>             stop an upload in progress
//   - retry <id>              restart a canceled or failed upload
//   - (p)rogress              aggregate progress of pending uploads
//   - link <id>               presigned download URL of a finished upload
//   - wait                    block until nothing is in progress
//   - help, exit | quit
//
// Identifiers may be abbreviated to any unique prefix.
package cli
