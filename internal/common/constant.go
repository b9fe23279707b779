package common

// DefaultContentType is sent for payloads whose type cannot be detected.
const DefaultContentType = "application/octet-stream"

// StorageKeyPrefix is the top-level prefix for uploaded objects.
const StorageKeyPrefix = "uploads"

// DigestMetadataKey carries the payload digest in object metadata.
const DigestMetadataKey = "blake2b"
