package roundhandlers

import "net/http"

// Handlers serves the round HTTP endpoints.
type Handlers interface {
	HandleStartRound(w http.ResponseWriter, r *http.Request)
	HandleGetRound(w http.ResponseWriter, r *http.Request)
	HandleAddShot(w http.ResponseWriter, r *http.Request)
	HandleAddPenalty(w http.ResponseWriter, r *http.Request)
	HandleUndoLastShot(w http.ResponseWriter, r *http.Request)
	HandleDeleteShot(w http.ResponseWriter, r *http.Request)
	HandleFinishHole(w http.ResponseWriter, r *http.Request)
	HandleRefreshHole(w http.ResponseWriter, r *http.Request)
	HandleScorecard(w http.ResponseWriter, r *http.Request)
	HandleResetRound(w http.ResponseWriter, r *http.Request)

	HandleListRounds(w http.ResponseWriter, r *http.Request)
	HandlePlayerStats(w http.ResponseWriter, r *http.Request)
	HandleGetSavedRound(w http.ResponseWriter, r *http.Request)
	HandleDeleteSavedRound(w http.ResponseWriter, r *http.Request)
	HandleScorecardXLSX(w http.ResponseWriter, r *http.Request)
	HandleScoreChart(w http.ResponseWriter, r *http.Request)
}
