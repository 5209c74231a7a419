package gitlab

import "time"

// Session is returned by the session endpoint
type Session struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	PrivateToken string `json:"private_token"`
}

type User struct {
	ID        int        `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email,omitempty"`
	Name      string     `json:"name"`
	State     string     `json:"state"`
	IsAdmin   bool       `json:"is_admin,omitempty"`
	AvatarURL string     `json:"avatar_url,omitempty"`
	WebURL    string     `json:"web_url,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

// UserUpsert is the payload of user creation. Nil fields are left out.
type UserUpsert struct {
	Email            *string `json:"email"`
	Password         *string `json:"password"`
	Username         *string `json:"username"`
	Name             *string `json:"name"`
	ProjectsLimit    *int    `json:"projects_limit"`
	Admin            *bool   `json:"admin"`
	CanCreateGroup   *bool   `json:"can_create_group"`
	SkipConfirmation *bool   `json:"skip_confirmation"`
}

type Namespace struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Path        string `json:"path"`
	Kind        string `json:"kind,omitempty"`
	FullPath    string `json:"full_path,omitempty"`
	Description string `json:"description,omitempty"`
	Visibility  string `json:"visibility,omitempty"`
	ParentID    *int   `json:"parent_id,omitempty"`
	WebURL      string `json:"web_url,omitempty"`
}

type NamespaceCreate struct {
	Name        string  `json:"name"`
	Path        string  `json:"path"`
	Description *string `json:"description"`
	Visibility  *string `json:"visibility"`
	ParentID    *int    `json:"parent_id"`
}

type Project struct {
	ID                int        `json:"id"`
	Name              string     `json:"name"`
	Path              string     `json:"path"`
	PathWithNamespace string     `json:"path_with_namespace"`
	Description       string     `json:"description"`
	DefaultBranch     string     `json:"default_branch"`
	Visibility        string     `json:"visibility,omitempty"`
	Archived          bool       `json:"archived"`
	SSHURLToRepo      string     `json:"ssh_url_to_repo"`
	HTTPURLToRepo     string     `json:"http_url_to_repo"`
	WebURL            string     `json:"web_url"`
	Owner             *User      `json:"owner,omitempty"`
	Namespace         *Namespace `json:"namespace,omitempty"`
	CreatedAt         *time.Time `json:"created_at,omitempty"`
	LastActivityAt    *time.Time `json:"last_activity_at,omitempty"`
}

// ProjectUpsert is the payload of project creation and update
type ProjectUpsert struct {
	Name                 *string `json:"name"`
	Path                 *string `json:"path"`
	NamespaceID          *int    `json:"namespace_id"`
	Description          *string `json:"description"`
	DefaultBranch        *string `json:"default_branch"`
	Visibility           *string `json:"visibility"`
	IssuesEnabled        *bool   `json:"issues_enabled"`
	MergeRequestsEnabled *bool   `json:"merge_requests_enabled"`
	WikiEnabled          *bool   `json:"wiki_enabled"`
}

type Milestone struct {
	ID    int    `json:"id"`
	IID   int    `json:"iid"`
	Title string `json:"title"`
	State string `json:"state"`
}

type Issue struct {
	ID          int        `json:"id"`
	IID         int        `json:"iid"`
	ProjectID   int        `json:"project_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	State       string     `json:"state"`
	Labels      []string   `json:"labels"`
	Milestone   *Milestone `json:"milestone,omitempty"`
	Assignee    *User      `json:"assignee,omitempty"`
	Author      *User      `json:"author,omitempty"`
	WebURL      string     `json:"web_url,omitempty"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

type IssueCreate struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	AssigneeID  *int    `json:"assignee_id"`
	MilestoneID *int    `json:"milestone_id"`
	Labels      *string `json:"labels"`
}

type IssueUpdate struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	AssigneeID  *int    `json:"assignee_id"`
	MilestoneID *int    `json:"milestone_id"`
	Labels      *string `json:"labels"`
	// StateEvent is "close" or "reopen"
	StateEvent *string `json:"state_event"`
}

type MergeRequest struct {
	ID           int        `json:"id"`
	IID          int        `json:"iid"`
	ProjectID    int        `json:"project_id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	State        string     `json:"state"`
	SourceBranch string     `json:"source_branch"`
	TargetBranch string     `json:"target_branch"`
	MergeStatus  string     `json:"merge_status,omitempty"`
	Author       *User      `json:"author,omitempty"`
	Assignee     *User      `json:"assignee,omitempty"`
	WebURL       string     `json:"web_url,omitempty"`
	CreatedAt    *time.Time `json:"created_at,omitempty"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
}

type MergeRequestCreate struct {
	SourceBranch    string  `json:"source_branch"`
	TargetBranch    string  `json:"target_branch"`
	Title           string  `json:"title"`
	Description     *string `json:"description"`
	AssigneeID      *int    `json:"assignee_id"`
	TargetProjectID *int    `json:"target_project_id"`
}

type MergeRequestUpdate struct {
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	TargetBranch *string `json:"target_branch"`
	AssigneeID   *int    `json:"assignee_id"`
	StateEvent   *string `json:"state_event"`
}

type MergeRequestAccept struct {
	MergeCommitMessage       *string `json:"merge_commit_message"`
	ShouldRemoveSourceBranch *bool   `json:"should_remove_source_branch"`
	SHA                      *string `json:"sha"`
}

// MergeRequestState filters merge request listings
type MergeRequestState string

const (
	MergeRequestStateAll    MergeRequestState = "all"
	MergeRequestStateOpened MergeRequestState = "opened"
	MergeRequestStateClosed MergeRequestState = "closed"
	MergeRequestStateMerged MergeRequestState = "merged"
)

type Commit struct {
	ID            string     `json:"id"`
	ShortID       string     `json:"short_id,omitempty"`
	Title         string     `json:"title,omitempty"`
	Message       string     `json:"message"`
	AuthorName    string     `json:"author_name,omitempty"`
	AuthorEmail   string     `json:"author_email,omitempty"`
	CommittedDate *time.Time `json:"committed_date,omitempty"`
}

type Branch struct {
	Name      string  `json:"name"`
	Protected bool    `json:"protected"`
	Merged    bool    `json:"merged"`
	Default   bool    `json:"default"`
	Commit    *Commit `json:"commit,omitempty"`
}

type Tag struct {
	Name    string  `json:"name"`
	Message string  `json:"message"`
	Target  string  `json:"target,omitempty"`
	Commit  *Commit `json:"commit,omitempty"`
}

type ProjectHook struct {
	ID                    int        `json:"id"`
	URL                   string     `json:"url"`
	ProjectID             int        `json:"project_id"`
	PushEvents            bool       `json:"push_events"`
	MergeRequestsEvents   bool       `json:"merge_requests_events"`
	BuildEvents           bool       `json:"build_events"`
	EnableSSLVerification bool       `json:"enable_ssl_verification"`
	CreatedAt             *time.Time `json:"created_at,omitempty"`
}

// ProjectHookUpsert is the payload of hook creation and update
type ProjectHookUpsert struct {
	URL                   string  `json:"url"`
	PushEvents            *bool   `json:"push_events"`
	MergeRequestsEvents   *bool   `json:"merge_requests_events"`
	BuildEvents           *bool   `json:"build_events"`
	EnableSSLVerification *bool   `json:"enable_ssl_verification"`
	Token                 *string `json:"token"`
}
