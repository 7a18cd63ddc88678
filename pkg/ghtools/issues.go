package ghtools

import (
	"context"
	"fmt"

	"github.com/harun/ghtools/pkg/githubclient"
	"github.com/harun/ghtools/pkg/toolkit"
)

// RegisterIssueTools registers the issue and pull request tools.
func RegisterIssueTools(catalog *toolkit.Catalog, client githubclient.Client) error {
	tools := []toolkit.ToolDefinition{
		searchIssuesTool(client),
		createIssueTool(client),
		updateIssueTool(client),
		createPullRequestTool(client),
		manageIssueLabelsTool(client),
	}

	for _, tool := range tools {
		if err := catalog.Register(tool); err != nil {
			return fmt.Errorf("failed to register tool %s: %w", tool.Name, err)
		}
	}
	return nil
}

func searchIssuesTool(client githubclient.Client) toolkit.ToolDefinition {
	return toolkit.ToolDefinition{
		Name:        "search_issues",
		Description: "Search for GitHub issues across repositories",
		Parameters: []toolkit.ToolParameter{
			{Name: "query", Type: "string", Description: "Search query string", Required: true},
			{Name: "state", Type: "string", Description: "Issue state (open, closed, all)", Default: "open"},
			{Name: "sort", Type: "string", Description: "Sort field", Default: "created"},
			{Name: "order", Type: "string", Description: "Sort order (asc or desc)", Default: "desc"},
			{Name: "max_results", Type: "integer", Description: "Maximum number of results", Default: 10},
		},
		Handler: func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
			query := strArg(params, "query")
			if state := strArg(params, "state"); state != "all" {
				query = fmt.Sprintf("%s state:%s", query, state)
			}

			issues, err := client.SearchIssues(ctx, query,
				strArg(params, "sort"), strArg(params, "order"),
				intArg(params, "max_results", 10))
			if err != nil {
				return nil, err
			}
			return issues, nil
		},
	}
}

func createIssueTool(client githubclient.Client) toolkit.ToolDefinition {
	return toolkit.ToolDefinition{
		Name:        "create_issue",
		Description: "Create a new GitHub issue",
		Parameters: []toolkit.ToolParameter{
			{Name: "owner", Type: "string", Description: "Repository owner", Required: true},
			{Name: "repo", Type: "string", Description: "Repository name", Required: true},
			{Name: "title", Type: "string", Description: "Issue title", Required: true},
			{Name: "body", Type: "string", Description: "Issue description"},
			{Name: "labels", Type: "array", Description: "Labels to apply"},
			{Name: "assignees", Type: "array", Description: "Assignee usernames"},
			{Name: "milestone", Type: "integer", Description: "Milestone number"},
		},
		Handler: func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
			issue, err := client.CreateIssue(ctx,
				strArg(params, "owner"), strArg(params, "repo"), strArg(params, "title"),
				githubclient.IssueChanges{
					Body:      strPtr(params, "body"),
					Labels:    stringSlicePtr(params, "labels"),
					Assignees: stringSlicePtr(params, "assignees"),
					Milestone: intPtr(params, "milestone"),
				})
			if err != nil {
				return nil, err
			}
			return issue, nil
		},
	}
}

func updateIssueTool(client githubclient.Client) toolkit.ToolDefinition {
	return toolkit.ToolDefinition{
		Name:        "update_issue",
		Description: "Update an existing GitHub issue",
		Parameters: []toolkit.ToolParameter{
			{Name: "owner", Type: "string", Description: "Repository owner", Required: true},
			{Name: "repo", Type: "string", Description: "Repository name", Required: true},
			{Name: "issue_number", Type: "integer", Description: "Issue number", Required: true},
			{Name: "title", Type: "string", Description: "New issue title"},
			{Name: "body", Type: "string", Description: "New issue description"},
			{Name: "state", Type: "string", Description: "New issue state (open, closed)"},
			{Name: "labels", Type: "array", Description: "Replacement labels"},
			{Name: "assignees", Type: "array", Description: "Replacement assignees"},
			{Name: "milestone", Type: "integer", Description: "New milestone number"},
		},
		Handler: func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
			issue, err := client.UpdateIssue(ctx,
				strArg(params, "owner"), strArg(params, "repo"),
				intArg(params, "issue_number", 0),
				githubclient.IssueChanges{
					Title:     strPtr(params, "title"),
					Body:      strPtr(params, "body"),
					State:     strPtr(params, "state"),
					Labels:    stringSlicePtr(params, "labels"),
					Assignees: stringSlicePtr(params, "assignees"),
					Milestone: intPtr(params, "milestone"),
				})
			if err != nil {
				return nil, err
			}
			return issue, nil
		},
	}
}

func createPullRequestTool(client githubclient.Client) toolkit.ToolDefinition {
	return toolkit.ToolDefinition{
		Name:        "create_pull_request",
		Description: "Create a new pull request",
		Parameters: []toolkit.ToolParameter{
			{Name: "owner", Type: "string", Description: "Repository owner", Required: true},
			{Name: "repo", Type: "string", Description: "Repository name", Required: true},
			{Name: "title", Type: "string", Description: "Pull request title", Required: true},
			{Name: "body", Type: "string", Description: "Pull request description"},
			{Name: "head", Type: "string", Description: "Source branch"},
			{Name: "base", Type: "string", Description: "Target branch", Default: "main"},
			{Name: "draft", Type: "boolean", Description: "Create as draft", Default: false},
			{Name: "labels", Type: "array", Description: "Labels to apply"},
			{Name: "assignees", Type: "array", Description: "Assignee usernames"},
			{Name: "milestone", Type: "integer", Description: "Milestone number"},
		},
		Handler: func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
			head := strArg(params, "head")
			if head == "" {
				return nil, fmt.Errorf("head branch is required to open a pull request")
			}

			pr, err := client.CreatePullRequest(ctx,
				strArg(params, "owner"), strArg(params, "repo"),
				githubclient.PullRequestParams{
					Title:     strArg(params, "title"),
					Body:      strArg(params, "body"),
					Head:      head,
					Base:      strArg(params, "base"),
					Draft:     boolArg(params, "draft"),
					Labels:    toStringSlice(params["labels"]),
					Assignees: toStringSlice(params["assignees"]),
					Milestone: intPtr(params, "milestone"),
				})
			if err != nil {
				return nil, err
			}
			return pr, nil
		},
	}
}

func manageIssueLabelsTool(client githubclient.Client) toolkit.ToolDefinition {
	return toolkit.ToolDefinition{
		Name:        "manage_issue_labels",
		Description: "Manage issue labels",
		Parameters: []toolkit.ToolParameter{
			{Name: "owner", Type: "string", Description: "Repository owner", Required: true},
			{Name: "repo", Type: "string", Description: "Repository name", Required: true},
			{Name: "issue_number", Type: "integer", Description: "Issue number", Required: true},
			{Name: "labels", Type: "array", Description: "Labels to set on the issue", Required: true},
		},
		Handler: func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
			labels := toStringSlice(params["labels"])
			if labels == nil {
				labels = []string{}
			}
			err := client.SetIssueLabels(ctx,
				strArg(params, "owner"), strArg(params, "repo"),
				intArg(params, "issue_number", 0), labels)
			if err != nil {
				return nil, err
			}
			return nil, nil
		},
	}
}
