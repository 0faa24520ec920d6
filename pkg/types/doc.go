// Package types defines the schema metadata descriptors, request and result
// shapes, configuration, and standard errors shared by the clinichub storage
// backend and its HTTP API.
package types
