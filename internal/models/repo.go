package models

// Repo is the subset of GitHub repository metadata the bot works with.
type Repo struct {
	Owner         string `json:"owner"`
	Name          string `json:"name"`
	FullName      string `json:"full_name"`
	DefaultBranch string `json:"default_branch"`
	HTMLURL       string `json:"html_url"`
}

// TreeEntry is one node of a flattened repository tree.
type TreeEntry struct {
	Path string `json:"path"`
	Type string `json:"type"` // "file" | "dir"
	Size int    `json:"size"`
}

// RepoFile is a fetched, decoded repository file.
type RepoFile struct {
	Name    string `json:"name"`
	Path    string `json:"path"`
	Size    int    `json:"size"`
	Content string `json:"content"`
}
