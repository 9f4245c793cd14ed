package domain

// SchemaOutcome records what the schema initializer did with one object.
type SchemaOutcome string

const (
	SchemaOutcomeCreated SchemaOutcome = "created"
	SchemaOutcomeExisted SchemaOutcome = "existed"
)

// Schema object names.
const (
	VectorExtension     = "vector"
	TranscriptionsTable = "transcriptions"
	QuotesTable         = "quotes"
)

// SchemaObject is one extension or table handled by the schema initializer.
type SchemaObject struct {
	Name    string
	Kind    string // "extension" or "table"
	Outcome SchemaOutcome
}

// SchemaReport lists the outcome for every object in creation order.
type SchemaReport struct {
	Objects []SchemaObject
}

// Add appends an outcome to the report.
func (r *SchemaReport) Add(kind, name string, outcome SchemaOutcome) {
	r.Objects = append(r.Objects, SchemaObject{Name: name, Kind: kind, Outcome: outcome})
}

// Created returns the names of objects created during the run.
func (r *SchemaReport) Created() []string {
	var names []string
	for _, o := range r.Objects {
		if o.Outcome == SchemaOutcomeCreated {
			names = append(names, o.Name)
		}
	}
	return names
}
