package ghtools

import (
	"errors"

	"github.com/harun/ghtools/pkg/githubclient"
	"github.com/harun/ghtools/pkg/toolkit"
)

// RegisterAll registers the full GitHub tool set on the catalog. Call it
// once during startup, before freezing the catalog.
func RegisterAll(catalog *toolkit.Catalog, client githubclient.Client) error {
	if client == nil {
		return errors.New("github client is required")
	}

	if err := RegisterRepositoryTools(catalog, client); err != nil {
		return err
	}
	if err := RegisterIssueTools(catalog, client); err != nil {
		return err
	}
	return RegisterWorkflowTools(catalog, client)
}
