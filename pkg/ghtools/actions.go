package ghtools

import (
	"context"
	"fmt"

	"github.com/harun/ghtools/pkg/githubclient"
	"github.com/harun/ghtools/pkg/toolkit"
)

// RegisterWorkflowTools registers the read-only GitHub Actions tools.
func RegisterWorkflowTools(catalog *toolkit.Catalog, client githubclient.Client) error {
	tools := []toolkit.ToolDefinition{
		listWorkflowsTool(client),
		listWorkflowRunsTool(client),
	}

	for _, tool := range tools {
		if err := catalog.Register(tool); err != nil {
			return fmt.Errorf("failed to register tool %s: %w", tool.Name, err)
		}
	}
	return nil
}

func listWorkflowsTool(client githubclient.Client) toolkit.ToolDefinition {
	return toolkit.ToolDefinition{
		Name:        "list_workflows",
		Description: "List GitHub Actions workflows in a repository",
		Parameters: []toolkit.ToolParameter{
			{Name: "owner", Type: "string", Description: "Repository owner", Required: true},
			{Name: "repo", Type: "string", Description: "Repository name", Required: true},
		},
		Handler: func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
			workflows, err := client.ListWorkflows(ctx, strArg(params, "owner"), strArg(params, "repo"))
			if err != nil {
				return nil, err
			}
			return workflows, nil
		},
	}
}

func listWorkflowRunsTool(client githubclient.Client) toolkit.ToolDefinition {
	return toolkit.ToolDefinition{
		Name:        "list_workflow_runs",
		Description: "List runs of a GitHub Actions workflow",
		Parameters: []toolkit.ToolParameter{
			{Name: "owner", Type: "string", Description: "Repository owner", Required: true},
			{Name: "repo", Type: "string", Description: "Repository name", Required: true},
			{Name: "workflow_file", Type: "string", Description: "Workflow file name (e.g. ci.yml)", Required: true},
			{Name: "status", Type: "string", Description: "Filter by run status (queued, in_progress, completed)"},
			{Name: "branch", Type: "string", Description: "Filter by branch name"},
		},
		Handler: func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
			runs, err := client.ListWorkflowRuns(ctx,
				strArg(params, "owner"), strArg(params, "repo"), strArg(params, "workflow_file"))
			if err != nil {
				return nil, err
			}

			if status := strArg(params, "status"); status != "" {
				filtered := runs[:0]
				for _, run := range runs {
					if run.Status == status {
						filtered = append(filtered, run)
					}
				}
				runs = filtered
			}
			if branch := strArg(params, "branch"); branch != "" {
				filtered := runs[:0]
				for _, run := range runs {
					if run.HeadBranch == branch {
						filtered = append(filtered, run)
					}
				}
				runs = filtered
			}
			return runs, nil
		},
	}
}
