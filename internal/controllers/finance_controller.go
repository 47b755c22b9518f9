package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dispatch_tracker/internal/services"
)

type FinanceController struct {
	finance *services.FinanceLedger
	fuel    *services.FuelLedger
}

func NewFinanceController(finance *services.FinanceLedger, fuel *services.FuelLedger) *FinanceController {
	return &FinanceController{finance: finance, fuel: fuel}
}

func (fc *FinanceController) ListFinance(c *gin.Context) {
	recs, err := fc.finance.List()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"finance": recs})
}

func (fc *FinanceController) RecordFinance(c *gin.Context) {
	var input struct {
		RouteID uint    `json:"route_id" binding:"required"`
		Total   float64 `json:"total" binding:"required"`
		Notes   string  `json:"notes"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rec, err := fc.finance.Record(input.RouteID, input.Total, input.Notes)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"record": rec})
}

func (fc *FinanceController) ListGas(c *gin.Context) {
	recs, err := fc.fuel.ListGas()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"gas": recs})
}

func (fc *FinanceController) RecordGas(c *gin.Context) {
	var input struct {
		Amount float64 `json:"amount" binding:"required"`
		Miles  float64 `json:"miles"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rec, err := fc.fuel.RecordGas(input.Amount, input.Miles)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"record": rec})
}
