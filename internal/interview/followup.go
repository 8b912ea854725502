package interview

const (
	// followupScoreThreshold gates follow-ups to strong answers. A weak
	// answer already signals insufficiency; the interview moves on instead
	// of probing it.
	followupScoreThreshold = 70

	// maxFollowupsPerQuestion bounds interview length per base question.
	maxFollowupsPerQuestion = 3
)

// ShouldFollowUp decides whether an evaluated answer warrants a follow-up
// probe: the evaluator must have supplied a reason, the score must be at or
// above the threshold, and the per-question cap must not be exhausted.
func ShouldFollowUp(score int, followupReason *string, currentFollowupCount int) bool {
	return followupReason != nil &&
		score >= followupScoreThreshold &&
		currentFollowupCount < maxFollowupsPerQuestion
}
