// Package githubclient defines the capability interface for the GitHub
// collaborator and its REST implementation. Tool handlers depend only on
// the Client interface so a test double can stand in for the platform.
package githubclient

import "context"

// Repo is a flat repository record. Timestamps are RFC 3339.
type Repo struct {
	Name        string `json:"name"`
	FullName    string `json:"full_name"`
	Description string `json:"description"`
	Stars       int    `json:"stars"`
	Forks       int    `json:"forks"`
	Language    string `json:"language"`
	URL         string `json:"url"`
	Private     bool   `json:"private"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// Issue is a flat issue record.
type Issue struct {
	Number     int      `json:"number"`
	Title      string   `json:"title"`
	Body       string   `json:"body"`
	State      string   `json:"state"`
	Closed     bool     `json:"closed"`
	Labels     []string `json:"labels"`
	Assignees  []string `json:"assignees"`
	CreatedAt  string   `json:"created_at"`
	UpdatedAt  string   `json:"updated_at"`
	URL        string   `json:"url"`
	Repository string   `json:"repository"`
}

// PullRequest is a flat pull request record.
type PullRequest struct {
	Number     int      `json:"number"`
	Title      string   `json:"title"`
	Body       string   `json:"body"`
	State      string   `json:"state"`
	Draft      bool     `json:"draft"`
	Labels     []string `json:"labels"`
	Assignees  []string `json:"assignees"`
	CreatedAt  string   `json:"created_at"`
	UpdatedAt  string   `json:"updated_at"`
	URL        string   `json:"url"`
	Repository string   `json:"repository"`
	Head       string   `json:"head"`
	Base       string   `json:"base"`
}

// Workflow is a flat GitHub Actions workflow record.
type Workflow struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Path      string `json:"path"`
	State     string `json:"state"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// WorkflowRun is a flat workflow run record.
type WorkflowRun struct {
	ID         int64  `json:"id"`
	Status     string `json:"status"`
	Conclusion string `json:"conclusion"`
	HeadBranch string `json:"head_branch"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}

// CreateRepoParams holds the optional fields for repository creation.
type CreateRepoParams struct {
	Name              string
	Description       string
	Private           bool
	AutoInit          bool
	GitignoreTemplate string
	LicenseTemplate   string
}

// IssueChanges holds issue fields to set. Nil fields are left unchanged.
type IssueChanges struct {
	Title     *string
	Body      *string
	State     *string
	Labels    *[]string
	Assignees *[]string
	Milestone *int
}

// PullRequestParams holds the fields for pull request creation.
type PullRequestParams struct {
	Title     string
	Body      string
	Head      string
	Base      string
	Draft     bool
	Labels    []string
	Assignees []string
	Milestone *int
}

// Client is the capability interface the tools call through. A production
// implementation talks to the GitHub REST API; tests substitute a double.
type Client interface {
	// ListRepos lists repositories of user, or of the acting user when
	// user is empty.
	ListRepos(ctx context.Context, user string) ([]Repo, error)
	CreateRepo(ctx context.Context, params CreateRepoParams) (Repo, error)
	UpdateRepoSettings(ctx context.Context, owner, repo string, settings map[string]interface{}) error
	AddCollaborator(ctx context.Context, owner, repo, username, permission string) error
	GetDefaultBranch(ctx context.Context, owner, repo string) (string, error)

	ListWorkflows(ctx context.Context, owner, repo string) ([]Workflow, error)
	GetWorkflow(ctx context.Context, owner, repo, workflowFile string) (Workflow, error)
	SetWorkflowState(ctx context.Context, owner, repo, workflowFile string, enabled bool) error
	DispatchWorkflow(ctx context.Context, owner, repo, workflowFile, ref string) error
	ListWorkflowRuns(ctx context.Context, owner, repo, workflowFile string) ([]WorkflowRun, error)

	SearchIssues(ctx context.Context, query, sort, order string, limit int) ([]Issue, error)
	CreateIssue(ctx context.Context, owner, repo, title string, changes IssueChanges) (Issue, error)
	UpdateIssue(ctx context.Context, owner, repo string, number int, changes IssueChanges) (Issue, error)
	CreatePullRequest(ctx context.Context, owner, repo string, params PullRequestParams) (PullRequest, error)
	SetIssueLabels(ctx context.Context, owner, repo string, number int, labels []string) error
}
