package models

// Garage 维修厂
// Capacity 既是车辆绑定的剩余名额，也是每天可接受的维修预约上限
type Garage struct {
	ID        int64    `json:"id" db:"id"`
	Name      string   `json:"name" db:"name"`
	Location  string   `json:"location" db:"location"`
	City      string   `json:"city" db:"city"`
	Capacity  int      `json:"capacity" db:"capacity"`
	Latitude  *float64 `json:"latitude,omitempty" db:"latitude"`
	Longitude *float64 `json:"longitude,omitempty" db:"longitude"`
}

// GarageInput 创建/全量更新维修厂的请求体
type GarageInput struct {
	Name     string `json:"name" binding:"required"`
	Location string `json:"location" binding:"required"`
	City     string `json:"city" binding:"required"`
	Capacity int    `json:"capacity"`
}

// GarageFilter 维修厂列表过滤条件
type GarageFilter struct {
	City string
}

// Coordinates 地理编码结果
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}
