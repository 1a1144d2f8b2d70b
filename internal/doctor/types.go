package doctor

// IssueCategory groups issues by type.
type IssueCategory string

const (
	// CategoryTools represents missing or unauthenticated CLIs.
	CategoryTools IssueCategory = "tools"
	// CategoryWorkspace represents problems with the workspace or base template.
	CategoryWorkspace IssueCategory = "workspace"
	// CategoryMetadata represents missing or unreadable creation-time sidecars.
	CategoryMetadata IssueCategory = "metadata"
	// CategoryDID represents themes with duplicate or template DIDs.
	CategoryDID IssueCategory = "did"
)

// categoryOrder is the order categories are reported in.
var categoryOrder = []IssueCategory{CategoryTools, CategoryWorkspace, CategoryMetadata, CategoryDID}

var categoryNames = map[IssueCategory]string{
	CategoryTools:     "Tool issues",
	CategoryWorkspace: "Workspace issues",
	CategoryMetadata:  "Metadata issues",
	CategoryDID:       "DID issues",
}

// Fix actions.
const (
	FixWriteSidecar = "write_sidecar" // record the folder mtime as creation time
)

// Issue represents a problem detected by doctor.
type Issue struct {
	Key         string        // tool name or theme id
	Description string        // human-readable description
	FixAction   string        // what --fix would do, empty if manual
	Category    IssueCategory // issue category
	Path        string        // theme folder for fixes
}

// IssueStats tracks counts by category.
type IssueStats struct {
	ToolsOK       int // tools found on PATH
	ToolIssues    int // missing or unauthenticated tools
	Themes        int // theme folders inspected
	SidecarsValid int // themes with a readable creation time
	SidecarIssues int // themes with missing or corrupt sidecars
	DIDDuplicates int // themes sharing a DID with another theme
	DIDTemplate   int // themes still on the base template DID
}
