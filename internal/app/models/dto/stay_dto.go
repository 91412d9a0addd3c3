package dto

import "time"

// LocationPingRequest is a geolocation ping from the client poller.
// Coordinates are pointers so that 0 (equator/prime meridian) is accepted;
// `required` on a plain float64 would treat it as missing.
type LocationPingRequest struct {
	Latitude  *float64 `json:"latitude" binding:"required,latitude" example:"37.4979"`
	Longitude *float64 `json:"longitude" binding:"required,longitude" example:"127.0276"`
	Category  string  `json:"category" binding:"omitempty,max=50" example:"FD6"`
	PlaceName *string `json:"placeName,omitempty" binding:"omitempty,max=100"`
}

// StayResponse is the public view of a stay
type StayResponse struct {
	ID        int64     `json:"id" example:"5"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Category  string    `json:"category" example:"FD6"`
	PlaceName *string   `json:"placeName,omitempty"`
	StartedAt time.Time `json:"startedAt"`
	EndedAt   time.Time `json:"endedAt"`
}

// LocationPingResponse reports what the ping did
type LocationPingResponse struct {
	Stay     StayResponse `json:"stay"`
	Extended bool         `json:"extended" example:"true"`
}

// StayListResponse is a paginated list of the caller's stays
type StayListResponse struct {
	Stays          []StayResponse `json:"stays"`
	PaginationInfo PaginationInfo `json:"pagination"`
}
