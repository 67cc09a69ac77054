package models

// AnalyticsQuery is the raw query of a comprehensive analysis request
type AnalyticsQuery struct {
	StartDate string `form:"start_date" json:"start_date" validate:"omitempty,iso_date"`
	EndDate   string `form:"end_date" json:"end_date" validate:"omitempty,iso_date"`
	DriverID  *uint  `form:"driver_id" json:"driver_id" validate:"omitempty,min=1"`
	Language  string `form:"language" json:"language" validate:"omitempty,language_code"`
}
