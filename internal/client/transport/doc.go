// Package transport stores upload payloads in S3-compatible object storage.
//
// S3Uploader talks to the bucket directly with PutObject. PresignedUploader
// presigns a PUT request and streams the payload over plain HTTP, the way a
// browser would. Both report byte progress while the body is read and map
// failures onto common.ErrCanceled or common.ErrTransport.
package transport
