package ghtools

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harun/ghtools/pkg/githubclient"
	"github.com/harun/ghtools/pkg/toolkit"
)

// newDispatcher wires the full tool set against the fake client, the way
// the serve command does at startup.
func newDispatcher(t *testing.T, client githubclient.Client) *toolkit.Dispatcher {
	t.Helper()
	catalog := toolkit.NewCatalog()
	require.NoError(t, RegisterAll(catalog, client))
	catalog.Freeze()
	return toolkit.NewDispatcher(catalog)
}

func invoke(t *testing.T, d *toolkit.Dispatcher, tool string, args map[string]interface{}) toolkit.Result {
	t.Helper()
	return d.Invoke(context.Background(), toolkit.Request{Tool: tool, Arguments: args})
}

func sampleRepos() []githubclient.Repo {
	return []githubclient.Repo{
		{Name: "alpha", FullName: "acme/alpha", Language: "Go", Stars: 5,
			CreatedAt: "2023-01-01T00:00:00Z", UpdatedAt: "2024-06-01T00:00:00Z"},
		{Name: "bravo", FullName: "acme/bravo", Language: "Python", Stars: 42,
			CreatedAt: "2022-01-01T00:00:00Z", UpdatedAt: "2024-01-01T00:00:00Z"},
		{Name: "charlie", FullName: "acme/charlie", Language: "Go", Stars: 17,
			CreatedAt: "2024-01-01T00:00:00Z", UpdatedAt: "2023-06-01T00:00:00Z"},
	}
}

func TestSearchRepos_LanguageFilter(t *testing.T) {
	fake := &fakeClient{
		listReposFn: func(ctx context.Context, user string) ([]githubclient.Repo, error) {
			return sampleRepos(), nil
		},
	}
	d := newDispatcher(t, fake)

	result := invoke(t, d, "search_repos", map[string]interface{}{
		"query": "language:go",
	})
	require.True(t, result.Success, "error: %s", result.Error)

	repos, ok := result.Output.([]githubclient.Repo)
	require.True(t, ok)
	require.Len(t, repos, 2)
	for _, repo := range repos {
		assert.Equal(t, "Go", repo.Language)
	}
}

func TestSearchRepos_SortByStarsDescending(t *testing.T) {
	fake := &fakeClient{
		listReposFn: func(ctx context.Context, user string) ([]githubclient.Repo, error) {
			return sampleRepos(), nil
		},
	}
	d := newDispatcher(t, fake)

	result := invoke(t, d, "search_repos", map[string]interface{}{
		"sort": "stars",
	})
	require.True(t, result.Success, "error: %s", result.Error)

	repos := result.Output.([]githubclient.Repo)
	require.Len(t, repos, 3)
	assert.Equal(t, "bravo", repos[0].Name)
	assert.Equal(t, "charlie", repos[1].Name)
	assert.Equal(t, "alpha", repos[2].Name)
}

func TestSearchRepos_SortByCreatedAscending(t *testing.T) {
	fake := &fakeClient{
		listReposFn: func(ctx context.Context, user string) ([]githubclient.Repo, error) {
			return sampleRepos(), nil
		},
	}
	d := newDispatcher(t, fake)

	result := invoke(t, d, "search_repos", map[string]interface{}{
		"sort":  "created",
		"order": "asc",
	})
	require.True(t, result.Success, "error: %s", result.Error)

	repos := result.Output.([]githubclient.Repo)
	require.Len(t, repos, 3)
	assert.Equal(t, "bravo", repos[0].Name)
	assert.Equal(t, "alpha", repos[1].Name)
	assert.Equal(t, "charlie", repos[2].Name)
}

func TestSearchRepos_MaxResults(t *testing.T) {
	fake := &fakeClient{
		listReposFn: func(ctx context.Context, user string) ([]githubclient.Repo, error) {
			return sampleRepos(), nil
		},
	}
	d := newDispatcher(t, fake)

	result := invoke(t, d, "search_repos", map[string]interface{}{
		"max_results": 1,
	})
	require.True(t, result.Success, "error: %s", result.Error)
	assert.Len(t, result.Output.([]githubclient.Repo), 1)
}

func TestSearchRepos_ForwardsUser(t *testing.T) {
	var seenUser string
	fake := &fakeClient{
		listReposFn: func(ctx context.Context, user string) ([]githubclient.Repo, error) {
			seenUser = user
			return nil, nil
		},
	}
	d := newDispatcher(t, fake)

	result := invoke(t, d, "search_repos", map[string]interface{}{
		"user": "octocat",
	})
	require.True(t, result.Success, "error: %s", result.Error)
	assert.Equal(t, "octocat", seenUser)
}

func TestCreateRepo_ForwardsParams(t *testing.T) {
	var seen githubclient.CreateRepoParams
	fake := &fakeClient{
		createRepoFn: func(ctx context.Context, params githubclient.CreateRepoParams) (githubclient.Repo, error) {
			seen = params
			return githubclient.Repo{Name: params.Name, Private: params.Private}, nil
		},
	}
	d := newDispatcher(t, fake)

	result := invoke(t, d, "create_repo", map[string]interface{}{
		"name":               "widgets",
		"description":        "A widget factory",
		"private":            true,
		"auto_init":          true,
		"gitignore_template": "Go",
	})
	require.True(t, result.Success, "error: %s", result.Error)

	assert.Equal(t, "widgets", seen.Name)
	assert.Equal(t, "A widget factory", seen.Description)
	assert.True(t, seen.Private)
	assert.True(t, seen.AutoInit)
	assert.Equal(t, "Go", seen.GitignoreTemplate)

	repo := result.Output.(githubclient.Repo)
	assert.Equal(t, "widgets", repo.Name)
	assert.True(t, repo.Private)
}

func TestUpdateRepoSettings(t *testing.T) {
	fake := &fakeClient{}
	d := newDispatcher(t, fake)

	result := invoke(t, d, "update_repo_settings", map[string]interface{}{
		"owner":    "acme",
		"repo":     "widgets",
		"settings": map[string]interface{}{"has_wiki": false, "description": "updated"},
	})
	require.True(t, result.Success, "error: %s", result.Error)

	require.Len(t, fake.settingsCalls, 1)
	call := fake.settingsCalls[0]
	assert.Equal(t, "acme", call.owner)
	assert.Equal(t, "widgets", call.repo)
	assert.Equal(t, false, call.settings["has_wiki"])
	assert.Equal(t, "updated", call.settings["description"])
}

func TestUpdateRepoSettings_EmptySettings(t *testing.T) {
	fake := &fakeClient{}
	d := newDispatcher(t, fake)

	result := invoke(t, d, "update_repo_settings", map[string]interface{}{
		"owner":    "acme",
		"repo":     "widgets",
		"settings": map[string]interface{}{},
	})
	assert.False(t, result.Success)
	assert.Equal(t, toolkit.KindUpstreamError, result.Kind)
	assert.Empty(t, fake.settingsCalls)
}

func TestManageCollaborators_DefaultPermission(t *testing.T) {
	fake := &fakeClient{}
	d := newDispatcher(t, fake)

	result := invoke(t, d, "manage_collaborators", map[string]interface{}{
		"owner":    "acme",
		"repo":     "widgets",
		"username": "octocat",
	})
	require.True(t, result.Success, "error: %s", result.Error)

	require.Len(t, fake.collaboratorCalls, 1)
	call := fake.collaboratorCalls[0]
	assert.Equal(t, "octocat", call.username)
	assert.Equal(t, "push", call.permission, "permission defaults to push")
}

func TestManageWorkflows_EnableDisable(t *testing.T) {
	fake := &fakeClient{}
	d := newDispatcher(t, fake)

	for _, action := range []string{"enable", "disable"} {
		result := invoke(t, d, "manage_workflows", map[string]interface{}{
			"owner":         "acme",
			"repo":          "widgets",
			"workflow_file": "ci.yml",
			"action":        action,
		})
		require.True(t, result.Success, "action %s: %s", action, result.Error)
	}

	require.Len(t, fake.workflowStates, 2)
	assert.True(t, fake.workflowStates[0].enabled)
	assert.False(t, fake.workflowStates[1].enabled)
	assert.Equal(t, "ci.yml", fake.workflowStates[0].workflowFile)
}

func TestManageWorkflows_TriggerUsesDefaultBranch(t *testing.T) {
	fake := &fakeClient{defaultBranch: "develop"}
	d := newDispatcher(t, fake)

	result := invoke(t, d, "manage_workflows", map[string]interface{}{
		"owner":         "acme",
		"repo":          "widgets",
		"workflow_file": "ci.yml",
		"action":        "trigger",
	})
	require.True(t, result.Success, "error: %s", result.Error)

	require.Len(t, fake.dispatches, 1)
	assert.Equal(t, "ci.yml", fake.dispatches[0].workflowFile)
	assert.Equal(t, "develop", fake.dispatches[0].ref)
}

func TestManageWorkflows_UnknownAction(t *testing.T) {
	fake := &fakeClient{}
	d := newDispatcher(t, fake)

	result := invoke(t, d, "manage_workflows", map[string]interface{}{
		"owner":         "acme",
		"repo":          "widgets",
		"workflow_file": "ci.yml",
		"action":        "restart",
	})
	assert.False(t, result.Success)
	assert.Equal(t, toolkit.KindUpstreamError, result.Kind)
	assert.Contains(t, result.Error, "restart")
	assert.Empty(t, fake.workflowStates)
	assert.Empty(t, fake.dispatches)
}
