package githubclient

import (
	"context"
	"strings"
	"time"

	"github.com/google/go-github/v72/github"
	"golang.org/x/oauth2"
)

// RESTClient implements Client against the GitHub REST API.
type RESTClient struct {
	gh *github.Client
}

// New creates a RESTClient authenticated with the given token.
func New(token string) *RESTClient {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	tc := oauth2.NewClient(context.Background(), ts)
	return &RESTClient{gh: github.NewClient(tc)}
}

func (c *RESTClient) ListRepos(ctx context.Context, user string) ([]Repo, error) {
	var out []Repo

	if user == "" {
		opts := &github.RepositoryListByAuthenticatedUserOptions{
			ListOptions: github.ListOptions{PerPage: 100},
		}
		for {
			repos, resp, err := c.gh.Repositories.ListByAuthenticatedUser(ctx, opts)
			if err != nil {
				return nil, wrapErr(err)
			}
			for _, r := range repos {
				out = append(out, repoRecord(r))
			}
			if resp.NextPage == 0 {
				break
			}
			opts.Page = resp.NextPage
		}
		return out, nil
	}

	opts := &github.RepositoryListByUserOptions{
		ListOptions: github.ListOptions{PerPage: 100},
	}
	for {
		repos, resp, err := c.gh.Repositories.ListByUser(ctx, user, opts)
		if err != nil {
			return nil, wrapErr(err)
		}
		for _, r := range repos {
			out = append(out, repoRecord(r))
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return out, nil
}

func (c *RESTClient) CreateRepo(ctx context.Context, params CreateRepoParams) (Repo, error) {
	req := &github.Repository{
		Name:     github.Ptr(params.Name),
		Private:  github.Ptr(params.Private),
		AutoInit: github.Ptr(params.AutoInit),
	}
	if params.Description != "" {
		req.Description = github.Ptr(params.Description)
	}
	if params.GitignoreTemplate != "" {
		req.GitignoreTemplate = github.Ptr(params.GitignoreTemplate)
	}
	if params.LicenseTemplate != "" {
		req.LicenseTemplate = github.Ptr(params.LicenseTemplate)
	}

	repo, _, err := c.gh.Repositories.Create(ctx, "", req)
	if err != nil {
		return Repo{}, wrapErr(err)
	}
	return repoRecord(repo), nil
}

func (c *RESTClient) UpdateRepoSettings(ctx context.Context, owner, repo string, settings map[string]interface{}) error {
	edit := &github.Repository{}
	for key, value := range settings {
		switch key {
		case "description":
			if s, ok := value.(string); ok {
				edit.Description = github.Ptr(s)
			}
		case "homepage":
			if s, ok := value.(string); ok {
				edit.Homepage = github.Ptr(s)
			}
		case "default_branch":
			if s, ok := value.(string); ok {
				edit.DefaultBranch = github.Ptr(s)
			}
		case "private":
			if b, ok := value.(bool); ok {
				edit.Private = github.Ptr(b)
			}
		case "has_issues":
			if b, ok := value.(bool); ok {
				edit.HasIssues = github.Ptr(b)
			}
		case "has_wiki":
			if b, ok := value.(bool); ok {
				edit.HasWiki = github.Ptr(b)
			}
		case "has_projects":
			if b, ok := value.(bool); ok {
				edit.HasProjects = github.Ptr(b)
			}
		case "archived":
			if b, ok := value.(bool); ok {
				edit.Archived = github.Ptr(b)
			}
		case "allow_squash_merge":
			if b, ok := value.(bool); ok {
				edit.AllowSquashMerge = github.Ptr(b)
			}
		case "allow_merge_commit":
			if b, ok := value.(bool); ok {
				edit.AllowMergeCommit = github.Ptr(b)
			}
		case "allow_rebase_merge":
			if b, ok := value.(bool); ok {
				edit.AllowRebaseMerge = github.Ptr(b)
			}
		case "delete_branch_on_merge":
			if b, ok := value.(bool); ok {
				edit.DeleteBranchOnMerge = github.Ptr(b)
			}
		}
	}

	_, _, err := c.gh.Repositories.Edit(ctx, owner, repo, edit)
	return wrapErr(err)
}

func (c *RESTClient) AddCollaborator(ctx context.Context, owner, repo, username, permission string) error {
	opts := &github.RepositoryAddCollaboratorOptions{Permission: permission}
	_, _, err := c.gh.Repositories.AddCollaborator(ctx, owner, repo, username, opts)
	return wrapErr(err)
}

func (c *RESTClient) GetDefaultBranch(ctx context.Context, owner, repo string) (string, error) {
	r, _, err := c.gh.Repositories.Get(ctx, owner, repo)
	if err != nil {
		return "", wrapErr(err)
	}
	return r.GetDefaultBranch(), nil
}

func (c *RESTClient) ListWorkflows(ctx context.Context, owner, repo string) ([]Workflow, error) {
	opts := &github.ListOptions{PerPage: 100}
	var out []Workflow
	for {
		workflows, resp, err := c.gh.Actions.ListWorkflows(ctx, owner, repo, opts)
		if err != nil {
			return nil, wrapErr(err)
		}
		for _, w := range workflows.Workflows {
			out = append(out, workflowRecord(w))
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return out, nil
}

func (c *RESTClient) GetWorkflow(ctx context.Context, owner, repo, workflowFile string) (Workflow, error) {
	w, _, err := c.gh.Actions.GetWorkflowByFileName(ctx, owner, repo, workflowFile)
	if err != nil {
		return Workflow{}, wrapErr(err)
	}
	return workflowRecord(w), nil
}

func (c *RESTClient) SetWorkflowState(ctx context.Context, owner, repo, workflowFile string, enabled bool) error {
	var err error
	if enabled {
		_, err = c.gh.Actions.EnableWorkflowByFileName(ctx, owner, repo, workflowFile)
	} else {
		_, err = c.gh.Actions.DisableWorkflowByFileName(ctx, owner, repo, workflowFile)
	}
	return wrapErr(err)
}

func (c *RESTClient) DispatchWorkflow(ctx context.Context, owner, repo, workflowFile, ref string) error {
	event := github.CreateWorkflowDispatchEventRequest{Ref: ref}
	_, err := c.gh.Actions.CreateWorkflowDispatchEventByFileName(ctx, owner, repo, workflowFile, event)
	return wrapErr(err)
}

func (c *RESTClient) ListWorkflowRuns(ctx context.Context, owner, repo, workflowFile string) ([]WorkflowRun, error) {
	opts := &github.ListWorkflowRunsOptions{
		ListOptions: github.ListOptions{PerPage: 100},
	}
	runs, _, err := c.gh.Actions.ListWorkflowRunsByFileName(ctx, owner, repo, workflowFile, opts)
	if err != nil {
		return nil, wrapErr(err)
	}
	out := make([]WorkflowRun, 0, len(runs.WorkflowRuns))
	for _, r := range runs.WorkflowRuns {
		out = append(out, WorkflowRun{
			ID:         r.GetID(),
			Status:     r.GetStatus(),
			Conclusion: r.GetConclusion(),
			HeadBranch: r.GetHeadBranch(),
			CreatedAt:  r.GetCreatedAt().Format(time.RFC3339),
			UpdatedAt:  r.GetUpdatedAt().Format(time.RFC3339),
		})
	}
	return out, nil
}

func (c *RESTClient) SearchIssues(ctx context.Context, query, sort, order string, limit int) ([]Issue, error) {
	opts := &github.SearchOptions{
		Sort:        sort,
		Order:       order,
		ListOptions: github.ListOptions{PerPage: limit},
	}
	result, _, err := c.gh.Search.Issues(ctx, query, opts)
	if err != nil {
		return nil, wrapErr(err)
	}

	issues := result.Issues
	if len(issues) > limit {
		issues = issues[:limit]
	}
	out := make([]Issue, 0, len(issues))
	for _, issue := range issues {
		out = append(out, issueRecord(issue))
	}
	return out, nil
}

func (c *RESTClient) CreateIssue(ctx context.Context, owner, repo, title string, changes IssueChanges) (Issue, error) {
	req := &github.IssueRequest{
		Title:     github.Ptr(title),
		Body:      changes.Body,
		Labels:    changes.Labels,
		Assignees: changes.Assignees,
		Milestone: changes.Milestone,
	}
	issue, _, err := c.gh.Issues.Create(ctx, owner, repo, req)
	if err != nil {
		return Issue{}, wrapErr(err)
	}
	record := issueRecord(issue)
	if record.Repository == "" {
		record.Repository = owner + "/" + repo
	}
	return record, nil
}

func (c *RESTClient) UpdateIssue(ctx context.Context, owner, repo string, number int, changes IssueChanges) (Issue, error) {
	req := &github.IssueRequest{
		Title:     changes.Title,
		Body:      changes.Body,
		State:     changes.State,
		Labels:    changes.Labels,
		Assignees: changes.Assignees,
		Milestone: changes.Milestone,
	}
	issue, _, err := c.gh.Issues.Edit(ctx, owner, repo, number, req)
	if err != nil {
		return Issue{}, wrapErr(err)
	}
	record := issueRecord(issue)
	if record.Repository == "" {
		record.Repository = owner + "/" + repo
	}
	return record, nil
}

func (c *RESTClient) CreatePullRequest(ctx context.Context, owner, repo string, params PullRequestParams) (PullRequest, error) {
	req := &github.NewPullRequest{
		Title: github.Ptr(params.Title),
		Head:  github.Ptr(params.Head),
		Base:  github.Ptr(params.Base),
		Draft: github.Ptr(params.Draft),
	}
	if params.Body != "" {
		req.Body = github.Ptr(params.Body)
	}

	pr, _, err := c.gh.PullRequests.Create(ctx, owner, repo, req)
	if err != nil {
		return PullRequest{}, wrapErr(err)
	}

	// Labels, assignees and milestone ride on the PR's issue.
	number := pr.GetNumber()
	if len(params.Labels) > 0 {
		if _, _, err := c.gh.Issues.ReplaceLabelsForIssue(ctx, owner, repo, number, params.Labels); err != nil {
			return PullRequest{}, wrapErr(err)
		}
	}
	if len(params.Assignees) > 0 {
		if _, _, err := c.gh.Issues.AddAssignees(ctx, owner, repo, number, params.Assignees); err != nil {
			return PullRequest{}, wrapErr(err)
		}
	}
	if params.Milestone != nil {
		if _, _, err := c.gh.Issues.Edit(ctx, owner, repo, number, &github.IssueRequest{Milestone: params.Milestone}); err != nil {
			return PullRequest{}, wrapErr(err)
		}
	}

	record := PullRequest{
		Number:     number,
		Title:      pr.GetTitle(),
		Body:       pr.GetBody(),
		State:      pr.GetState(),
		Draft:      pr.GetDraft(),
		Labels:     params.Labels,
		Assignees:  params.Assignees,
		CreatedAt:  pr.GetCreatedAt().Format(time.RFC3339),
		UpdatedAt:  pr.GetUpdatedAt().Format(time.RFC3339),
		URL:        pr.GetHTMLURL(),
		Repository: pr.GetBase().GetRepo().GetFullName(),
		Head:       pr.GetHead().GetRef(),
		Base:       pr.GetBase().GetRef(),
	}
	if record.Labels == nil {
		record.Labels = []string{}
	}
	if record.Assignees == nil {
		record.Assignees = []string{}
	}
	if record.Repository == "" {
		record.Repository = owner + "/" + repo
	}
	return record, nil
}

func (c *RESTClient) SetIssueLabels(ctx context.Context, owner, repo string, number int, labels []string) error {
	_, _, err := c.gh.Issues.ReplaceLabelsForIssue(ctx, owner, repo, number, labels)
	return wrapErr(err)
}

func repoRecord(r *github.Repository) Repo {
	return Repo{
		Name:        r.GetName(),
		FullName:    r.GetFullName(),
		Description: r.GetDescription(),
		Stars:       r.GetStargazersCount(),
		Forks:       r.GetForksCount(),
		Language:    r.GetLanguage(),
		URL:         r.GetHTMLURL(),
		Private:     r.GetPrivate(),
		CreatedAt:   r.GetCreatedAt().Format(time.RFC3339),
		UpdatedAt:   r.GetUpdatedAt().Format(time.RFC3339),
	}
}

func workflowRecord(w *github.Workflow) Workflow {
	return Workflow{
		ID:        w.GetID(),
		Name:      w.GetName(),
		Path:      w.GetPath(),
		State:     w.GetState(),
		CreatedAt: w.GetCreatedAt().Format(time.RFC3339),
		UpdatedAt: w.GetUpdatedAt().Format(time.RFC3339),
	}
}

func issueRecord(issue *github.Issue) Issue {
	labels := make([]string, 0, len(issue.Labels))
	for _, label := range issue.Labels {
		labels = append(labels, label.GetName())
	}
	assignees := make([]string, 0, len(issue.Assignees))
	for _, assignee := range issue.Assignees {
		assignees = append(assignees, assignee.GetLogin())
	}

	repository := issue.GetRepository().GetFullName()
	if repository == "" {
		// Search results carry only the API repository URL.
		repository = strings.TrimPrefix(issue.GetRepositoryURL(), "https://api.github.com/repos/")
	}

	return Issue{
		Number:     issue.GetNumber(),
		Title:      issue.GetTitle(),
		Body:       issue.GetBody(),
		State:      issue.GetState(),
		Closed:     issue.GetState() == "closed",
		Labels:     labels,
		Assignees:  assignees,
		CreatedAt:  issue.GetCreatedAt().Format(time.RFC3339),
		UpdatedAt:  issue.GetUpdatedAt().Format(time.RFC3339),
		URL:        issue.GetHTMLURL(),
		Repository: repository,
	}
}
