// Package repo binds the brands store to the remote API
package repo

import (
	"backoffice/internal/adapters/restapi"
	"backoffice/internal/services/brands/domain"
)

const basePath = "/api/v1/brands"

// REST is the remote-API binder for brands; it satisfies
// storekit.Client[domain.Brand]
type REST struct {
	*restapi.Collection[domain.Brand]
}

// NewREST returns a binder rooted at the brands collection path
func NewREST(c *restapi.Client) *REST {
	return &REST{Collection: restapi.NewCollection[domain.Brand](c, basePath)}
}
