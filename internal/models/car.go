package models

// 最早的量产年份
const MinProductionYear = 1886

// Car 车辆信息
type Car struct {
	ID             int64    `json:"id" db:"id"`
	Make           string   `json:"make" db:"make"`
	Model          string   `json:"model" db:"model"`
	ProductionYear int      `json:"productionYear" db:"production_year"`
	LicensePlate   string   `json:"licensePlate" db:"license_plate"`
	GarageIDs      []int64  `json:"garageIds" db:"-"`
	Garages        []Garage `json:"garages" db:"-"`
}

// CarInput 创建/更新车辆的请求体
// 更新时忽略 GarageIDs
type CarInput struct {
	Make           string  `json:"make" binding:"required"`
	Model          string  `json:"model" binding:"required"`
	ProductionYear int     `json:"productionYear" binding:"required"`
	LicensePlate   string  `json:"licensePlate" binding:"required"`
	GarageIDs      []int64 `json:"garageIds"`
}

// CarFilter 车辆列表过滤条件，零值表示不过滤
type CarFilter struct {
	Make     string
	GarageID int64
	FromYear int
	ToYear   int
}
