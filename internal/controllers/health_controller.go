package controllers

import (
	"context"
	"net/http"

	"github.com/shivam7147/Quizio-backend/internal/app"
	"github.com/shivam7147/Quizio-backend/internal/dtos"
	"github.com/shivam7147/Quizio-backend/internal/utils"
)

// pinger is the slice of the pool the health check needs.
type pinger interface {
	Ping(ctx context.Context) error
}

type HealthController struct {
	db pinger
}

func NewHealthController(app *app.App) *HealthController {
	return &HealthController{
		db: app.DB,
	}
}

func (c *HealthController) HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	// Check database connectivity; the probe dies with the request.
	if err := c.db.Ping(r.Context()); err != nil {
		utils.RespondError(w, http.StatusServiceUnavailable, "Database unreachable", err)
		return
	}

	resp := dtos.HealthCheckResponse{
		Status: "OK",
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}
