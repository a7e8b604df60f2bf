package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/langchou/garagebook/internal/models"
)

// CreateCar 创建车辆
func (h *Handler) CreateCar(c *gin.Context) {
	var input models.CarInput
	if !bindJSON(c, &input) {
		return
	}

	car, err := h.cars.Create(c.Request.Context(), input)
	if err != nil {
		h.respondError(c, err, "create car")
		return
	}

	c.JSON(http.StatusOK, car)
}

// ListCars 获取车辆列表
// GET /cars?carMake=&garageId=&fromYear=&toYear=
func (h *Handler) ListCars(c *gin.Context) {
	q := queryParser{c: c}
	filter := models.CarFilter{
		Make:     c.Query("carMake"),
		GarageID: q.int64("garageId"),
		FromYear: q.int("fromYear"),
		ToYear:   q.int("toYear"),
	}
	if !q.ok() {
		return
	}

	cars, err := h.cars.List(c.Request.Context(), filter)
	if err != nil {
		h.respondError(c, err, "list cars")
		return
	}

	c.JSON(http.StatusOK, cars)
}

// ListAllCars 获取全部车辆，忽略过滤参数
// GET /cars/all
func (h *Handler) ListAllCars(c *gin.Context) {
	cars, err := h.cars.List(c.Request.Context(), models.CarFilter{})
	if err != nil {
		h.respondError(c, err, "list cars")
		return
	}

	c.JSON(http.StatusOK, cars)
}

// GetCar 获取车辆详情
func (h *Handler) GetCar(c *gin.Context) {
	id, ok := parseID(c, "car")
	if !ok {
		return
	}

	car, err := h.cars.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err, "get car")
		return
	}

	c.JSON(http.StatusOK, car)
}

// UpdateCar 更新车辆，维修厂绑定不变
func (h *Handler) UpdateCar(c *gin.Context) {
	id, ok := parseID(c, "car")
	if !ok {
		return
	}

	var input models.CarInput
	if !bindJSON(c, &input) {
		return
	}

	car, err := h.cars.Update(c.Request.Context(), id, input)
	if err != nil {
		h.respondError(c, err, "update car")
		return
	}

	c.JSON(http.StatusOK, car)
}

// DeleteCar 删除车辆并归还维修厂名额
func (h *Handler) DeleteCar(c *gin.Context) {
	id, ok := parseID(c, "car")
	if !ok {
		return
	}

	if err := h.cars.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err, "delete car")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Car deleted successfully"})
}
