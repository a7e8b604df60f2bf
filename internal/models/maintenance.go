package models

// 维修预约状态
const (
	StatusScheduled  = "scheduled"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
	StatusMissed     = "missed"
)

// MaintenanceRequest 维修预约
type MaintenanceRequest struct {
	ID            int64  `json:"id" db:"id"`
	GarageID      int64  `json:"garageId" db:"garage_id"`
	GarageName    string `json:"garageName" db:"garage_name"`
	CarID         int64  `json:"carId" db:"car_id"`
	CarName       string `json:"carName" db:"car_name"`
	ScheduledDate Date   `json:"scheduledDate" db:"scheduled_date"`
	ServiceType   string `json:"serviceType" db:"service_type"`
	Status        string `json:"status" db:"status"`
}

// MaintenanceInput 创建/全量更新预约的请求体
type MaintenanceInput struct {
	GarageID      int64  `json:"garageId" binding:"required"`
	CarID         int64  `json:"carId" binding:"required"`
	ScheduledDate Date   `json:"scheduledDate"`
	ServiceType   string `json:"serviceType"`
}

// MaintenanceFilter 预约列表过滤条件
type MaintenanceFilter struct {
	CarID     int64
	GarageID  int64
	StartDate *Date
	EndDate   *Date
}

// TransitionInput 状态流转请求体
type TransitionInput struct {
	Event string `json:"event" binding:"required"`
}
