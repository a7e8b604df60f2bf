package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/langchou/garagebook/internal/models"
)

// CreateGarage 创建维修厂
func (h *Handler) CreateGarage(c *gin.Context) {
	var input models.GarageInput
	if !bindJSON(c, &input) {
		return
	}

	garage, err := h.garages.Create(c.Request.Context(), input)
	if err != nil {
		h.respondError(c, err, "create garage")
		return
	}

	c.JSON(http.StatusOK, garage)
}

// ListGarages 获取维修厂列表
// GET /garages?city=
func (h *Handler) ListGarages(c *gin.Context) {
	garages, err := h.garages.List(c.Request.Context(), models.GarageFilter{City: c.Query("city")})
	if err != nil {
		h.respondError(c, err, "list garages")
		return
	}

	c.JSON(http.StatusOK, garages)
}

// GetGarage 获取维修厂详情
func (h *Handler) GetGarage(c *gin.Context) {
	id, ok := parseID(c, "garage")
	if !ok {
		return
	}

	garage, err := h.garages.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err, "get garage")
		return
	}

	c.JSON(http.StatusOK, garage)
}

// UpdateGarage 全量更新维修厂
func (h *Handler) UpdateGarage(c *gin.Context) {
	id, ok := parseID(c, "garage")
	if !ok {
		return
	}

	var input models.GarageInput
	if !bindJSON(c, &input) {
		return
	}

	garage, err := h.garages.Update(c.Request.Context(), id, input)
	if err != nil {
		h.respondError(c, err, "update garage")
		return
	}

	c.JSON(http.StatusOK, garage)
}

// DeleteGarage 删除维修厂
func (h *Handler) DeleteGarage(c *gin.Context) {
	id, ok := parseID(c, "garage")
	if !ok {
		return
	}

	if err := h.garages.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err, "delete garage")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Garage deleted successfully"})
}

// DailyAvailabilityReport 维修厂每日剩余名额
// GET /garages/dailyAvailabilityReport?garageId=&startDate=&endDate=
func (h *Handler) DailyAvailabilityReport(c *gin.Context) {
	q := queryParser{c: c}
	garageID := q.int64("garageId")
	start := q.date("startDate", true)
	end := q.date("endDate", true)
	if !q.ok() {
		return
	}
	if garageID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "garageId is required"})
		return
	}

	h.dailyAvailability(c, garageID, *start, *end)
}

// GarageStats 与 DailyAvailabilityReport 相同，参数为旧版命名
// GET /garages/:id/stats?start_date=&end_date=
func (h *Handler) GarageStats(c *gin.Context) {
	id, ok := parseID(c, "garage")
	if !ok {
		return
	}

	q := queryParser{c: c}
	start := q.date("start_date", true)
	end := q.date("end_date", true)
	if !q.ok() {
		return
	}

	h.dailyAvailability(c, id, *start, *end)
}

func (h *Handler) dailyAvailability(c *gin.Context, garageID int64, start, end models.Date) {
	report, err := h.garages.DailyAvailability(c.Request.Context(), garageID, start, end)
	if err != nil {
		h.respondError(c, err, "build availability report")
		return
	}

	c.JSON(http.StatusOK, report)
}
