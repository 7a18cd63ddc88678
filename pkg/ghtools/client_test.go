package ghtools

import (
	"context"

	"github.com/harun/ghtools/pkg/githubclient"
)

// fakeClient is a test double for the GitHub collaborator. Each method
// records its call and delegates to the corresponding func field when set.
type fakeClient struct {
	listReposFn    func(ctx context.Context, user string) ([]githubclient.Repo, error)
	createRepoFn   func(ctx context.Context, params githubclient.CreateRepoParams) (githubclient.Repo, error)
	searchIssuesFn func(ctx context.Context, query, sort, order string, limit int) ([]githubclient.Issue, error)
	createIssueFn  func(ctx context.Context, owner, repo, title string, changes githubclient.IssueChanges) (githubclient.Issue, error)
	updateIssueFn  func(ctx context.Context, owner, repo string, number int, changes githubclient.IssueChanges) (githubclient.Issue, error)
	createPRFn     func(ctx context.Context, owner, repo string, params githubclient.PullRequestParams) (githubclient.PullRequest, error)
	listRunsFn     func(ctx context.Context, owner, repo, workflowFile string) ([]githubclient.WorkflowRun, error)

	settingsCalls     []settingsCall
	collaboratorCalls []collaboratorCall
	workflowStates    []workflowStateCall
	dispatches        []dispatchCall
	labelCalls        []labelCall
	defaultBranch     string
	workflows         []githubclient.Workflow
}

type settingsCall struct {
	owner, repo string
	settings    map[string]interface{}
}

type collaboratorCall struct {
	owner, repo, username, permission string
}

type workflowStateCall struct {
	owner, repo, workflowFile string
	enabled                   bool
}

type dispatchCall struct {
	owner, repo, workflowFile, ref string
}

type labelCall struct {
	owner, repo string
	number      int
	labels      []string
}

func (f *fakeClient) ListRepos(ctx context.Context, user string) ([]githubclient.Repo, error) {
	if f.listReposFn != nil {
		return f.listReposFn(ctx, user)
	}
	return nil, nil
}

func (f *fakeClient) CreateRepo(ctx context.Context, params githubclient.CreateRepoParams) (githubclient.Repo, error) {
	if f.createRepoFn != nil {
		return f.createRepoFn(ctx, params)
	}
	return githubclient.Repo{Name: params.Name}, nil
}

func (f *fakeClient) UpdateRepoSettings(ctx context.Context, owner, repo string, settings map[string]interface{}) error {
	f.settingsCalls = append(f.settingsCalls, settingsCall{owner, repo, settings})
	return nil
}

func (f *fakeClient) AddCollaborator(ctx context.Context, owner, repo, username, permission string) error {
	f.collaboratorCalls = append(f.collaboratorCalls, collaboratorCall{owner, repo, username, permission})
	return nil
}

func (f *fakeClient) GetDefaultBranch(ctx context.Context, owner, repo string) (string, error) {
	if f.defaultBranch != "" {
		return f.defaultBranch, nil
	}
	return "main", nil
}

func (f *fakeClient) ListWorkflows(ctx context.Context, owner, repo string) ([]githubclient.Workflow, error) {
	return f.workflows, nil
}

func (f *fakeClient) GetWorkflow(ctx context.Context, owner, repo, workflowFile string) (githubclient.Workflow, error) {
	return githubclient.Workflow{Path: ".github/workflows/" + workflowFile}, nil
}

func (f *fakeClient) SetWorkflowState(ctx context.Context, owner, repo, workflowFile string, enabled bool) error {
	f.workflowStates = append(f.workflowStates, workflowStateCall{owner, repo, workflowFile, enabled})
	return nil
}

func (f *fakeClient) DispatchWorkflow(ctx context.Context, owner, repo, workflowFile, ref string) error {
	f.dispatches = append(f.dispatches, dispatchCall{owner, repo, workflowFile, ref})
	return nil
}

func (f *fakeClient) ListWorkflowRuns(ctx context.Context, owner, repo, workflowFile string) ([]githubclient.WorkflowRun, error) {
	if f.listRunsFn != nil {
		return f.listRunsFn(ctx, owner, repo, workflowFile)
	}
	return nil, nil
}

func (f *fakeClient) SearchIssues(ctx context.Context, query, sort, order string, limit int) ([]githubclient.Issue, error) {
	if f.searchIssuesFn != nil {
		return f.searchIssuesFn(ctx, query, sort, order, limit)
	}
	return nil, nil
}

func (f *fakeClient) CreateIssue(ctx context.Context, owner, repo, title string, changes githubclient.IssueChanges) (githubclient.Issue, error) {
	if f.createIssueFn != nil {
		return f.createIssueFn(ctx, owner, repo, title, changes)
	}
	return githubclient.Issue{Title: title, Repository: owner + "/" + repo}, nil
}

func (f *fakeClient) UpdateIssue(ctx context.Context, owner, repo string, number int, changes githubclient.IssueChanges) (githubclient.Issue, error) {
	if f.updateIssueFn != nil {
		return f.updateIssueFn(ctx, owner, repo, number, changes)
	}
	return githubclient.Issue{Number: number, Repository: owner + "/" + repo}, nil
}

func (f *fakeClient) CreatePullRequest(ctx context.Context, owner, repo string, params githubclient.PullRequestParams) (githubclient.PullRequest, error) {
	if f.createPRFn != nil {
		return f.createPRFn(ctx, owner, repo, params)
	}
	return githubclient.PullRequest{Title: params.Title, Head: params.Head, Base: params.Base}, nil
}

func (f *fakeClient) SetIssueLabels(ctx context.Context, owner, repo string, number int, labels []string) error {
	f.labelCalls = append(f.labelCalls, labelCall{owner, repo, number, labels})
	return nil
}
