package optimizerun

// CleanupOptions is the set of independent toggles controlling which
// destructive edits an optimization run applies. The zero value disables
// everything; use DefaultCleanupOptions for the usual full cleanup.
type CleanupOptions struct {
	RemoveComments    bool `json:"remove_comments" toml:"remove_comments"`
	RemoveWhitespace  bool `json:"remove_whitespace" toml:"remove_whitespace"`
	RemoveUnusedFiles bool `json:"remove_unused_files" toml:"remove_unused_files"`
	OptimizeImages    bool `json:"optimize_images" toml:"optimize_images"`
	MinifyCode        bool `json:"minify_code" toml:"minify_code"`
}

// DefaultCleanupOptions returns options with every cleanup enabled.
func DefaultCleanupOptions() CleanupOptions {
	return CleanupOptions{
		RemoveComments:    true,
		RemoveWhitespace:  true,
		RemoveUnusedFiles: true,
		OptimizeImages:    true,
		MinifyCode:        true,
	}
}

// ArchiveFormat selects the output archive produced by a run.
type ArchiveFormat string

const (
	ArchiveZip   ArchiveFormat = "zip"
	ArchiveTarGz ArchiveFormat = "tar.gz"
)

// Stats accumulates counters for a single optimization run. It is owned
// exclusively by the orchestrator while the run is in progress and is
// read-only once the run finishes.
type Stats struct {
	FilesProcessed    int   `json:"files_processed"`
	FilesDeleted      int   `json:"files_deleted"`
	BytesSaved        int64 `json:"bytes_saved"`
	CommentsRemoved   int   `json:"comments_removed"`
	WhitespaceCleaned int   `json:"whitespace_cleaned"`
	ImagesOptimized   int   `json:"images_optimized"`
}

// Confidence indicates how much corroboration the unused-asset
// classification had. Classification without any scanned markup files is
// weaker, since style/script-only reference graphs miss the usual entry
// points.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
)

// UnusedAsset identifies one file classified as unused.
type UnusedAsset struct {
	Path string `json:"path"`
	Size uint64 `json:"size"`
}

// UnusedAssetGroup reports unused assets of one category. Files holds at
// most reportedFileLimit entries sorted by descending size; Count and
// TotalSize cover the whole category.
type UnusedAssetGroup struct {
	Count     int           `json:"count"`
	TotalSize uint64        `json:"total_size"`
	Files     []UnusedAsset `json:"files"`
}

// UnusedReport is the unused-asset classification for a whole project.
type UnusedReport struct {
	TotalFilesAnalyzed int              `json:"total_files_analyzed"`
	MarkupFiles        int              `json:"markup_files"`
	StyleFiles         int              `json:"style_files"`
	ScriptFiles        int              `json:"script_files"`
	ImageFiles         int              `json:"image_files"`
	ReferencesFound    int              `json:"references_found"`
	UnusedCSS          UnusedAssetGroup `json:"unused_css"`
	UnusedJS           UnusedAssetGroup `json:"unused_js"`
	UnusedImages       UnusedAssetGroup `json:"unused_images"`
	Confidence         Confidence       `json:"confidence"`

	// AllUnused is the full deletion candidate set, uncapped. The reported
	// groups above are truncated for presentation; deletion decisions use
	// this set.
	AllUnused []string `json:"-"`
}
