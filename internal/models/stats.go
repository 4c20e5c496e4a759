package models

// CityCount is one aggregate row: how many times a city has been searched.
type CityCount struct {
	City  string `json:"city" example:"London"`
	Count int64  `json:"count" example:"42"`
}
