package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dispatch_tracker/internal/services"
)

type ExportController struct {
	exporter *services.Exporter
}

func NewExportController(exporter *services.Exporter) *ExportController {
	return &ExportController{exporter: exporter}
}

// Export dumps every collection as one JSON document for manual backup.
func (ec *ExportController) Export(c *gin.Context) {
	snapshot, err := ec.exporter.Snapshot()
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename=dispatch-backup.json")
	c.JSON(http.StatusOK, snapshot)
}
