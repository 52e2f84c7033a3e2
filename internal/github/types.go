package github

import "time"

// User is a GitHub account, either a person or an organisation.
type User struct {
	Login     string `json:"login"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	HTMLURL   string `json:"html_url"`
	AvatarURL string `json:"avatar_url"`
	Blog      string `json:"blog"`
}

// DisplayName returns Name, falling back to Login.
func (u User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Login
}

// Owner is the account a repository belongs to.
type Owner struct {
	Login string `json:"login"`
}

// Repository is the subset of the repository resource the check reads.
type Repository struct {
	Name          string    `json:"name"`
	FullName      string    `json:"full_name"`
	Description   string    `json:"description"`
	Owner         Owner     `json:"owner"`
	HTMLURL       string    `json:"html_url"`
	Language      string    `json:"language"`
	UpdatedAt     time.Time `json:"updated_at"`
	PushedAt      time.Time `json:"pushed_at"`
	OpenIssues    int       `json:"open_issues_count"`
	Private       bool      `json:"private"`
	Fork          bool      `json:"fork"`
	DefaultBranch string    `json:"default_branch"`
}

// FullNameOrName returns "owner/name" when known, else the bare name.
func (r Repository) FullNameOrName() string {
	if r.FullName != "" {
		return r.FullName
	}
	return r.Name
}

// Tree entry types.
const (
	TypeBlob = "blob"
	TypeTree = "tree"
)

// TreeEntry is one path in a git tree listing.
type TreeEntry struct {
	Path string `json:"path"`
	Type string `json:"type"`
	SHA  string `json:"sha"`
}

// BlobPaths returns the paths of blob entries, preserving order.
func BlobPaths(entries []TreeEntry) []string {
	paths := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Type == TypeBlob {
			paths = append(paths, e.Path)
		}
	}
	return paths
}

type treeResponse struct {
	SHA       string      `json:"sha"`
	Tree      []TreeEntry `json:"tree"`
	Truncated bool        `json:"truncated"`
}

type contentResponse struct {
	Type     string `json:"type"`
	Path     string `json:"path"`
	Encoding string `json:"encoding"`
	Content  string `json:"content"`
}
