package forms

import "github.com/SscSPs/bills_app/internal/core/domain"

// PhaseName is the wire name of a phase.
type PhaseName string

const (
	PhaseLoading    PhaseName = "loading"
	PhaseLoadFailed PhaseName = "load_failed"
	PhaseEditing    PhaseName = "editing"
	PhaseSaving     PhaseName = "saving"
	PhaseDeleting   PhaseName = "deleting"
	PhaseDone       PhaseName = "done"
)

// Phase is one of Loading, LoadFailed, Editing, Saving, Deleting or Done.
type Phase interface {
	Name() PhaseName
	isPhase()
}

// Loading means the record is being fetched.
type Loading struct{}

// LoadFailed means the record could not be fetched. Load may be retried.
type LoadFailed struct {
	Err error
}

// Editing is the only phase that accepts edits.
type Editing struct {
	Fields        Fields
	ConfirmDelete bool
	Message       Message // one-shot, cleared by MessageShown
}

// Saving means the repository is persisting the record built from Fields.
type Saving struct {
	Fields Fields
}

// Deleting means the repository is removing Account.
type Deleting struct {
	Account domain.Account
}

// Outcome tells how a form finished.
type Outcome string

const (
	OutcomeSaved   Outcome = "saved"
	OutcomeRemoved Outcome = "removed"
)

// Done is terminal.
type Done struct {
	Account domain.Account
	Outcome Outcome
}

func (Loading) Name() PhaseName    { return PhaseLoading }
func (LoadFailed) Name() PhaseName { return PhaseLoadFailed }
func (Editing) Name() PhaseName    { return PhaseEditing }
func (Saving) Name() PhaseName     { return PhaseSaving }
func (Deleting) Name() PhaseName   { return PhaseDeleting }
func (Done) Name() PhaseName       { return PhaseDone }

func (Loading) isPhase()    {}
func (LoadFailed) isPhase() {}
func (Editing) isPhase()    {}
func (Saving) isPhase()     {}
func (Deleting) isPhase()   {}
func (Done) isPhase()       {}
