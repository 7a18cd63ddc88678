// Package ghtools registers the GitHub tool set: repository, issue,
// pull request and workflow operations exposed through the tool catalog.
// Handlers delegate to the githubclient collaborator and return flat
// records; they carry no GitHub protocol logic of their own.
package ghtools

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/harun/ghtools/pkg/githubclient"
	"github.com/harun/ghtools/pkg/toolkit"
)

// RegisterRepositoryTools registers the repository management tools.
func RegisterRepositoryTools(catalog *toolkit.Catalog, client githubclient.Client) error {
	tools := []toolkit.ToolDefinition{
		searchReposTool(client),
		createRepoTool(client),
		updateRepoSettingsTool(client),
		manageCollaboratorsTool(client),
		manageWorkflowsTool(client),
	}

	for _, tool := range tools {
		if err := catalog.Register(tool); err != nil {
			return fmt.Errorf("failed to register tool %s: %w", tool.Name, err)
		}
	}
	return nil
}

func searchReposTool(client githubclient.Client) toolkit.ToolDefinition {
	return toolkit.ToolDefinition{
		Name:        "search_repos",
		Description: "Search for GitHub repositories using various criteria",
		Parameters: []toolkit.ToolParameter{
			{Name: "query", Type: "string", Description: "Optional filter string (e.g. \"language:go\")", Default: ""},
			{Name: "sort", Type: "string", Description: "Sort field (updated, created, stars)", Default: "updated"},
			{Name: "order", Type: "string", Description: "Sort order (asc or desc)", Default: "desc"},
			{Name: "max_results", Type: "integer", Description: "Maximum number of results", Default: 10},
			{Name: "user", Type: "string", Description: "Username to list repositories for (defaults to the acting user)"},
		},
		Handler: func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
			repos, err := client.ListRepos(ctx, strArg(params, "user"))
			if err != nil {
				return nil, err
			}

			if query := strArg(params, "query"); strings.HasPrefix(query, "language:") {
				language := strings.TrimPrefix(query, "language:")
				filtered := repos[:0]
				for _, repo := range repos {
					if repo.Language != "" && strings.EqualFold(repo.Language, language) {
						filtered = append(filtered, repo)
					}
				}
				repos = filtered
			}

			desc := strArg(params, "order") != "asc"
			switch strArg(params, "sort") {
			case "created":
				sort.SliceStable(repos, func(i, j int) bool {
					return less(repos[i].CreatedAt, repos[j].CreatedAt, desc)
				})
			case "stars":
				sort.SliceStable(repos, func(i, j int) bool {
					if desc {
						return repos[i].Stars > repos[j].Stars
					}
					return repos[i].Stars < repos[j].Stars
				})
			default:
				sort.SliceStable(repos, func(i, j int) bool {
					return less(repos[i].UpdatedAt, repos[j].UpdatedAt, desc)
				})
			}

			if max := intArg(params, "max_results", 10); max > 0 && len(repos) > max {
				repos = repos[:max]
			}
			return repos, nil
		},
	}
}

// less orders RFC 3339 timestamps, which compare correctly as strings.
func less(a, b string, desc bool) bool {
	if desc {
		return a > b
	}
	return a < b
}

func createRepoTool(client githubclient.Client) toolkit.ToolDefinition {
	return toolkit.ToolDefinition{
		Name:        "create_repo",
		Description: "Create a new GitHub repository",
		Parameters: []toolkit.ToolParameter{
			{Name: "name", Type: "string", Description: "Repository name", Required: true},
			{Name: "description", Type: "string", Description: "Repository description"},
			{Name: "private", Type: "boolean", Description: "Whether the repository should be private", Default: false},
			{Name: "auto_init", Type: "boolean", Description: "Initialize with a README", Default: false},
			{Name: "gitignore_template", Type: "string", Description: "Gitignore template to use"},
			{Name: "license_template", Type: "string", Description: "License template to use"},
		},
		Handler: func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
			repo, err := client.CreateRepo(ctx, githubclient.CreateRepoParams{
				Name:              strArg(params, "name"),
				Description:       strArg(params, "description"),
				Private:           boolArg(params, "private"),
				AutoInit:          boolArg(params, "auto_init"),
				GitignoreTemplate: strArg(params, "gitignore_template"),
				LicenseTemplate:   strArg(params, "license_template"),
			})
			if err != nil {
				return nil, err
			}
			return repo, nil
		},
	}
}

func updateRepoSettingsTool(client githubclient.Client) toolkit.ToolDefinition {
	return toolkit.ToolDefinition{
		Name:        "update_repo_settings",
		Description: "Update repository settings and configurations",
		Parameters: []toolkit.ToolParameter{
			{Name: "owner", Type: "string", Description: "Repository owner", Required: true},
			{Name: "repo", Type: "string", Description: "Repository name", Required: true},
			{Name: "settings", Type: "object", Description: "Settings to update", Required: true},
		},
		Handler: func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
			settings, err := toSettingsMap(params["settings"])
			if err != nil {
				return nil, err
			}
			if err := client.UpdateRepoSettings(ctx, strArg(params, "owner"), strArg(params, "repo"), settings); err != nil {
				return nil, err
			}
			return nil, nil
		},
	}
}

func manageCollaboratorsTool(client githubclient.Client) toolkit.ToolDefinition {
	return toolkit.ToolDefinition{
		Name:        "manage_collaborators",
		Description: "Manage repository collaborators",
		Parameters: []toolkit.ToolParameter{
			{Name: "owner", Type: "string", Description: "Repository owner", Required: true},
			{Name: "repo", Type: "string", Description: "Repository name", Required: true},
			{Name: "username", Type: "string", Description: "Collaborator username", Required: true},
			{Name: "permission", Type: "string", Description: "Permission level (pull, push, admin, maintain, triage)", Default: "push"},
		},
		Handler: func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
			err := client.AddCollaborator(ctx,
				strArg(params, "owner"), strArg(params, "repo"),
				strArg(params, "username"), strArg(params, "permission"))
			if err != nil {
				return nil, err
			}
			return nil, nil
		},
	}
}

func manageWorkflowsTool(client githubclient.Client) toolkit.ToolDefinition {
	return toolkit.ToolDefinition{
		Name:        "manage_workflows",
		Description: "Manage GitHub Actions workflows",
		Parameters: []toolkit.ToolParameter{
			{Name: "owner", Type: "string", Description: "Repository owner", Required: true},
			{Name: "repo", Type: "string", Description: "Repository name", Required: true},
			{Name: "workflow_file", Type: "string", Description: "Workflow file name (e.g. ci.yml)", Required: true},
			{Name: "action", Type: "string", Description: "Action to perform (enable, disable, trigger)", Required: true},
		},
		Handler: func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
			owner := strArg(params, "owner")
			repo := strArg(params, "repo")
			workflowFile := strArg(params, "workflow_file")

			switch action := strArg(params, "action"); action {
			case "enable":
				return nil, client.SetWorkflowState(ctx, owner, repo, workflowFile, true)
			case "disable":
				return nil, client.SetWorkflowState(ctx, owner, repo, workflowFile, false)
			case "trigger":
				ref, err := client.GetDefaultBranch(ctx, owner, repo)
				if err != nil {
					return nil, err
				}
				return nil, client.DispatchWorkflow(ctx, owner, repo, workflowFile, ref)
			default:
				return nil, fmt.Errorf("unknown workflow action %q (expected enable, disable or trigger)", action)
			}
		},
	}
}
