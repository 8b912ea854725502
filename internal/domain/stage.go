package domain

import "fmt"

// Stage is the current phase of the fixed interview protocol. Stages only
// ever advance; Concluded is absorbing.
type Stage string

const (
	StageResumeSubmitted Stage = "resume_submitted"
	StageOpening         Stage = "opening"
	StageSelfIntro       Stage = "self_introduction"
	StageProjectQNA      Stage = "project_qna"
	StageTechnicalQNA    Stage = "technical_qna"
	StageConcluded       Stage = "concluded"
)

// stageOrder defines the fixed total order of the interview protocol.
var stageOrder = map[Stage]int{
	StageResumeSubmitted: 0,
	StageOpening:         1,
	StageSelfIntro:       2,
	StageProjectQNA:      3,
	StageTechnicalQNA:    4,
	StageConcluded:       5,
}

// Ordinal returns the stage's position in the protocol order, or -1 for an
// unknown stage.
func (s Stage) Ordinal() int {
	ord, ok := stageOrder[s]
	if !ok {
		return -1
	}
	return ord
}

// Valid reports whether s is one of the known stages.
func (s Stage) Valid() bool {
	_, ok := stageOrder[s]
	return ok
}

// CanAdvanceTo reports whether a transition from s to next is allowed.
// Transitions are strictly forward; nothing leaves Concluded.
func (s Stage) CanAdvanceTo(next Stage) bool {
	from, ok := stageOrder[s]
	if !ok {
		return false
	}
	to, ok := stageOrder[next]
	if !ok {
		return false
	}
	return to > from
}

// ParseStage converts a persisted string into a Stage. Unknown values fail
// loudly instead of silently resetting to the initial stage, so corrupt or
// future records surface at load time.
func ParseStage(v string) (Stage, error) {
	s := Stage(v)
	if !s.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownStage, v)
	}
	return s, nil
}
