package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterRoutes 注册路由
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	// 维修厂
	garages := r.Group("/garages")
	{
		garages.POST("", h.CreateGarage)
		garages.GET("", h.ListGarages)
		garages.GET("/dailyAvailabilityReport", h.DailyAvailabilityReport)
		garages.GET("/:id", h.GetGarage)
		garages.PUT("/:id", h.UpdateGarage)
		garages.DELETE("/:id", h.DeleteGarage)
		garages.GET("/:id/stats", h.GarageStats) // 旧版日报表路径
	}

	// 车辆
	cars := r.Group("/cars")
	{
		cars.POST("", h.CreateCar)
		cars.GET("", h.ListCars)
		cars.GET("/all", h.ListAllCars)
		cars.GET("/:id", h.GetCar)
		cars.PUT("/:id", h.UpdateCar)
		cars.DELETE("/:id", h.DeleteCar)
	}

	// 维修预约
	maintenance := r.Group("/maintenance")
	{
		maintenance.POST("", h.CreateMaintenance)
		maintenance.GET("", h.ListMaintenance)
		maintenance.GET("/monthlyRequestsReport", h.MonthlyRequestsReport)
		maintenance.GET("/stats", h.MaintenanceStats)
		maintenance.GET("/:id", h.GetMaintenance)
		maintenance.PUT("/:id", h.UpdateMaintenance)
		maintenance.DELETE("/:id", h.DeleteMaintenance)
		maintenance.POST("/:id/transition", h.TransitionMaintenance)
	}

	// WebSocket
	r.GET("/ws", h.HandleWebSocket)

	// 健康检查
	r.GET("/health", h.HealthCheck)

	// Prometheus 指标
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
