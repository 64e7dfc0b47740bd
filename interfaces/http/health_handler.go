package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type IHealthHandler interface {
	Root(c *gin.Context)
	Healthz(c *gin.Context)
}

type HealthHandler struct {
	// Ready reports a degraded dependency, e.g. thumbnail assets that failed to load.
	Ready func() error
}

func NewHealthHandler(ready func() error) IHealthHandler {
	return &HealthHandler{Ready: ready}
}

// Root answers liveness probes with a plain "ok".
func (h *HealthHandler) Root(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

// Healthz returns OK for health checks
func (h *HealthHandler) Healthz(ctx *gin.Context) {
	if h.Ready != nil {
		if err := h.Ready(); err != nil {
			ctx.JSON(http.StatusOK, gin.H{"status": "degraded", "reason": err.Error()})
			return
		}
	}
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}
