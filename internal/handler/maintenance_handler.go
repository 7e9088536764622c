package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CleanupReferences runs the dangling-reference cleanup pass and
// reports what it removed.
func (a *API) CleanupReferences(c *gin.Context) {
	report, err := a.maintenance.CleanupReferences()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Opprydding feilet")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Opprydding fullført",
		"report":  report,
	})
}

// SyncReferences runs the best-effort event↔artist association sync.
func (a *API) SyncReferences(c *gin.Context) {
	report := a.maintenance.SyncArtistEvents()
	status := http.StatusOK
	message := "Synkronisering fullført"
	if report.Errors > 0 {
		message = "Synkronisering fullført med feil"
	}
	c.JSON(status, gin.H{
		"message": message,
		"report":  report,
	})
}
