package optimizerun

// CodeMetrics summarizes comment and whitespace density over a sample of a
// project's code files. It estimates what the destructive cleanup would
// reclaim without running it.
type CodeMetrics struct {
	FilesSampled         int     `json:"files_sampled"`
	TotalLines           int     `json:"total_lines"`
	CommentLines         int     `json:"comment_lines"`
	CommentPercent       float64 `json:"comment_percent"`
	BlankLines           int     `json:"blank_lines"`
	WhitespaceSavingsEst int64   `json:"whitespace_savings_bytes"`
}

// ImageInventory counts a project's image assets by format. Optimizable
// covers the formats the transformer can re-encode.
type ImageInventory struct {
	Count       int            `json:"count"`
	TotalSize   uint64         `json:"total_size"`
	ByFormat    map[string]int `json:"by_format"`
	Optimizable int            `json:"optimizable"`
}

// AnalysisResult is the complete non-destructive analysis of a project.
type AnalysisResult struct {
	Unused UnusedReport   `json:"unused_assets"`
	Code   CodeMetrics    `json:"code_metrics"`
	Images ImageInventory `json:"image_inventory"`
}
