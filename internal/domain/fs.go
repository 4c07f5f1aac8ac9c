package domain

// EditOperation is a single text replacement applied to a file's content.
// Edits apply sequentially: each OldText is located in the current (possibly
// already-edited) content, so edit order matters.
type EditOperation struct {
	OldText string `json:"oldText"`
	NewText string `json:"newText"`
}

// ResolvedTarget is the outcome of validating a virtual path: the real
// filesystem path to operate on, plus whether that path currently exists.
// Exists=false is the "create new file/dir" case, where only the parent
// could be canonicalized.
type ResolvedTarget struct {
	RealPath string
	Exists   bool
}

// FileInfo is caller-facing file metadata. Path is the virtual path;
// timestamps are pre-rendered in a fixed human-readable format.
type FileInfo struct {
	Path        string `json:"path"`
	Size        int64  `json:"size"`
	Created     string `json:"created"`
	Modified    string `json:"modified"`
	Accessed    string `json:"accessed"`
	IsDirectory bool   `json:"isDirectory"`
	IsFile      bool   `json:"isFile"`
	Permissions string `json:"permissions"`
}
