package completion

import "github.com/cliway/cliway/types"

// Candidate is one completion suggestion. Value is the text a shell would
// insert, Description an optional human hint, Kind drives ranking and lets
// shells style suggestions (e.g. trailing slash for directories).
type Candidate struct {
	Value       string
	Description string
	Kind        types.CandidateKind
}
