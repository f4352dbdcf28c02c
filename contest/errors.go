package contest

import (
	"net/http"

	"github.com/sacensibas/backend/srvcerror"
)

const ErrCodeContestNotFound = "contest_not_found"

func newErrContestNotFound() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeContestNotFound,
		"sacensības netika atrastas",
	).SetHttpStatusCode(http.StatusNotFound)
}

const ErrCodeInvalidRule = "invalid_contest_rule"

func newErrInvalidRule() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeInvalidRule,
		"nederīgs sacensību formāts",
	).SetHttpStatusCode(http.StatusBadRequest)
}

const ErrCodeInvalidTitle = "invalid_title"

func newErrInvalidTitle() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeInvalidTitle,
		"nosaukums ir nederīgs",
	).SetHttpStatusCode(http.StatusBadRequest)
}

const ErrCodeContentTooLong = "content_too_long"

func newErrContentTooLong() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeContentTooLong,
		"apraksts ir pārāk garš",
	).SetHttpStatusCode(http.StatusBadRequest)
}

const ErrCodeInvalidTimeRange = "invalid_time_range"

func newErrInvalidTimeRange() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeInvalidTimeRange,
		"sākumam jābūt pirms beigām",
	).SetHttpStatusCode(http.StatusBadRequest)
}

const ErrCodePenaltyConfigRequired = "penalty_config_required"

func newErrPenaltyConfigRequired() *srvcerror.Error {
	return srvcerror.New(
		ErrCodePenaltyConfigRequired,
		"nepieciešama augoša soda koeficientu tabula",
	).SetHttpStatusCode(http.StatusBadRequest)
}

const ErrCodeAlreadyAttended = "already_attended"

func newErrAlreadyAttended() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeAlreadyAttended,
		"dalība jau ir reģistrēta",
	).SetHttpStatusCode(http.StatusConflict)
}

const ErrCodeNotAttended = "not_attended"

func newErrNotAttended() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeNotAttended,
		"dalība nav reģistrēta",
	).SetHttpStatusCode(http.StatusForbidden)
}

const ErrCodeScoreboardHidden = "scoreboard_hidden"

func newErrScoreboardHidden() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeScoreboardHidden,
		"rezultātu tabula vēl nav pieejama",
	).SetHttpStatusCode(http.StatusForbidden)
}

const ErrCodeStatusConflict = "status_conflict"

func newErrStatusConflict() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeStatusConflict,
		"statuss tika mainīts paralēli, mēģiniet vēlreiz",
	).SetHttpStatusCode(http.StatusConflict)
}

const ErrCodeContestConflict = "contest_conflict"

func newErrContestConflict() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeContestConflict,
		"sacensību ieraksts tika mainīts paralēli",
	).SetHttpStatusCode(http.StatusConflict)
}

const ErrCodeStatusNotFound = "status_not_found"

func newErrStatusNotFound() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeStatusNotFound,
		"dalībnieka statuss netika atrasts",
	).SetHttpStatusCode(http.StatusNotFound)
}

const ErrCodeRecalcFailed = "recalc_failed"

func newErrRecalcFailed() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeRecalcFailed,
		"daļai dalībnieku statusu pārrēķins neizdevās",
	).SetHttpStatusCode(http.StatusInternalServerError)
}
