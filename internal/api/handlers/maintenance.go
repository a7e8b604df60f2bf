package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/langchou/garagebook/internal/models"
)

// CreateMaintenance 创建维修预约
func (h *Handler) CreateMaintenance(c *gin.Context) {
	var input models.MaintenanceInput
	if !bindJSON(c, &input) {
		return
	}

	req, err := h.maintenance.Create(c.Request.Context(), input)
	if err != nil {
		h.respondError(c, err, "create maintenance request")
		return
	}

	c.JSON(http.StatusOK, req)
}

// ListMaintenance 获取维修预约列表
// GET /maintenance?carId=&garageId=&startDate=&endDate=
func (h *Handler) ListMaintenance(c *gin.Context) {
	q := queryParser{c: c}
	filter := models.MaintenanceFilter{
		CarID:     q.int64("carId"),
		GarageID:  q.int64("garageId"),
		StartDate: q.date("startDate", false),
		EndDate:   q.date("endDate", false),
	}
	if !q.ok() {
		return
	}

	requests, err := h.maintenance.List(c.Request.Context(), filter)
	if err != nil {
		h.respondError(c, err, "list maintenance requests")
		return
	}

	c.JSON(http.StatusOK, requests)
}

// GetMaintenance 获取维修预约详情
func (h *Handler) GetMaintenance(c *gin.Context) {
	id, ok := parseID(c, "request")
	if !ok {
		return
	}

	req, err := h.maintenance.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err, "get maintenance request")
		return
	}

	c.JSON(http.StatusOK, req)
}

// UpdateMaintenance 全量更新维修预约
func (h *Handler) UpdateMaintenance(c *gin.Context) {
	id, ok := parseID(c, "request")
	if !ok {
		return
	}

	var input models.MaintenanceInput
	if !bindJSON(c, &input) {
		return
	}

	req, err := h.maintenance.Update(c.Request.Context(), id, input)
	if err != nil {
		h.respondError(c, err, "update maintenance request")
		return
	}

	c.JSON(http.StatusOK, req)
}

// DeleteMaintenance 删除维修预约
func (h *Handler) DeleteMaintenance(c *gin.Context) {
	id, ok := parseID(c, "request")
	if !ok {
		return
	}

	if err := h.maintenance.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err, "delete maintenance request")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Maintenance request deleted successfully"})
}

// TransitionMaintenance 预约状态流转
// POST /maintenance/:id/transition {"event": "start|complete|cancel|miss"}
func (h *Handler) TransitionMaintenance(c *gin.Context) {
	id, ok := parseID(c, "request")
	if !ok {
		return
	}

	var input models.TransitionInput
	if !bindJSON(c, &input) {
		return
	}

	result, err := h.maintenance.Transition(c.Request.Context(), id, input.Event)
	if err != nil {
		h.respondError(c, err, "transition maintenance request")
		return
	}

	c.JSON(http.StatusOK, result)
}

// MonthlyRequestsReport 每月预约数
// GET /maintenance/monthlyRequestsReport?garageId=&startMonth=&endMonth=
func (h *Handler) MonthlyRequestsReport(c *gin.Context) {
	q := queryParser{c: c}
	garageID := q.int64("garageId")
	start := q.month("startMonth")
	end := q.month("endMonth")
	if !q.ok() {
		return
	}

	report, err := h.maintenance.MonthlyReport(c.Request.Context(), garageID, start, end)
	if err != nil {
		h.respondError(c, err, "build monthly report")
		return
	}

	c.JSON(http.StatusOK, report)
}

// MaintenanceStats 每月预约统计
// GET /maintenance/stats?garageId=&startMonth=&endMonth=
func (h *Handler) MaintenanceStats(c *gin.Context) {
	q := queryParser{c: c}
	garageID := q.int64("garageId")
	start := q.month("startMonth")
	end := q.month("endMonth")
	if !q.ok() {
		return
	}

	stats, err := h.maintenance.Stats(c.Request.Context(), garageID, start, end)
	if err != nil {
		h.respondError(c, err, "build request statistics")
		return
	}

	c.JSON(http.StatusOK, stats)
}
