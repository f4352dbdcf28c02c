package contest

import (
	"time"
)

// ContestSrvc is the scoring engine entry point the handler layer and
// schedulers talk to.
type ContestSrvc struct {
	contests     ContestRepo
	statuses     StatusRepo
	participants ParticipantDir
	problems     ProblemDir

	now func() time.Time
}

func NewContestSrvc(
	contests ContestRepo,
	statuses StatusRepo,
	participants ParticipantDir,
	problems ProblemDir,
) *ContestSrvc {
	return &ContestSrvc{
		contests:     contests,
		statuses:     statuses,
		participants: participants,
		problems:     problems,
		now:          time.Now,
	}
}

// Capability is the cross-cutting permission hook injected into
// scoreboard and record reads. Callers without the override capability
// see whatever the rule's visibility predicate allows.
type Capability interface {
	HasPermission(perm string) bool
	OwnsContest(c *Contest) bool
}

const PermViewHiddenScoreboard = "contest.scoreboard.view_hidden"

// AnonymousCapability grants nothing.
type AnonymousCapability struct{}

func (AnonymousCapability) HasPermission(perm string) bool { return false }
func (AnonymousCapability) OwnsContest(c *Contest) bool    { return false }

func canSeeHidden(cap Capability, c *Contest) bool {
	if cap == nil {
		return false
	}
	return cap.HasPermission(PermViewHiddenScoreboard) || cap.OwnsContest(c)
}
