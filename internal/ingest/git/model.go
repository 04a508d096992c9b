package git

import "time"

// Signature identifies an author or committer at a point in time
type Signature struct {
	Name  string    `json:"name"`
	Email string    `json:"email"`
	When  time.Time `json:"when"`
}

// CommitSummary is one entry of first-parent history
type CommitSummary struct {
	SHA       string    `json:"sha"`
	Message   string    `json:"message"`
	Author    Signature `json:"author"`
	Committer Signature `json:"committer"`
}

// RepoCensus summarizes the files reachable from HEAD
// Binary blobs are counted but never contribute lines
type RepoCensus struct {
	Languages   map[string]int `json:"languages"` // language -> lines of text
	TotalLines  int            `json:"total_lines"`
	FileCount   int            `json:"file_count"`
	BinaryFiles int            `json:"binary_files"`
}
