package common

// AccessTokenHeaderName is the gRPC metadata key carrying the access token
// that identifies the owner of a request.
const AccessTokenHeaderName = "access_token"

// DeviceIDHeaderName is the optional gRPC metadata key naming the device
// the request originates from.
const DeviceIDHeaderName = "device-id"

// StorageStatusTrailerName carries the backend HTTP status of a failed
// storage call back to the client.
const StorageStatusTrailerName = "storage-status"
