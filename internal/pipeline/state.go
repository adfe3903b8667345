package pipeline

// State carries mutable values across stages of a single publish run.
type State struct {
	ProjectDir string // directory the generator runs in
	OutputDir  string // generated documentation root, input to import
	Branch     string // snapshot branch name, typically gh-pages
	RemoteURL  string // push destination
	Token      string // push credential, never logged

	CommitHash string // set by the import stage
}
