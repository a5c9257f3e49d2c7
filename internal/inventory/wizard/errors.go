package wizard

import "errors"

// Validation errors for the interactive wizard.
var (
	errClusterNameRequired = errors.New("cluster name is required")
	errClusterNameInvalid  = errors.New("cluster name must be 1-32 lowercase alphanumeric characters or hyphens, starting and ending with alphanumeric")
	errEndpointRequired    = errors.New("endpoint is required")
	errEndpointInvalid     = errors.New("endpoint must look like https://<host>:<port>")
	errHostnameRequired    = errors.New("hostname is required")
	errHostnameInvalid     = errors.New("hostname must be lowercase alphanumeric characters or hyphens")
	errIPRequired          = errors.New("IP address is required")
	errIPInvalid           = errors.New("invalid IP address")
	errFileExists          = errors.New("file already exists")
)
