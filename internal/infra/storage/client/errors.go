package client

import "errors"

var (
	ErrBuildQuery = errors.New("client.repository: failed to build query")
	ErrExecQuery  = errors.New("client.repository: failed to execute query")
)
