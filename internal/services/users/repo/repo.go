// Package repo binds the users store to the remote API
package repo

import (
	"backoffice/internal/adapters/restapi"
	"backoffice/internal/services/users/domain"
)

const basePath = "/api/v1/users"

// REST is the remote-API binder for users; it satisfies
// storekit.Client[domain.User]
type REST struct {
	*restapi.Collection[domain.User]
}

// NewREST returns a binder rooted at the users collection path
func NewREST(c *restapi.Client) *REST {
	return &REST{Collection: restapi.NewCollection[domain.User](c, basePath)}
}
