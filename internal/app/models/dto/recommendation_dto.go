package dto

// RecommendedPlace is a Kakao place scored by the caller's category weights
type RecommendedPlace struct {
	PlaceID     string  `json:"placeId" example:"26338954"`
	Name        string  `json:"name" example:"Menya Sandaime"`
	Category    string  `json:"category" example:"FD6"`
	AddressName string  `json:"addressName"`
	PlaceURL    string  `json:"placeUrl"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Weight      float64 `json:"weight" example:"0.4"`
}

// CategoryWeight is the share of one category in the caller's stays
type CategoryWeight struct {
	Category string  `json:"category" example:"FD6"`
	Count    int     `json:"count" example:"4"`
	Weight   float64 `json:"weight" example:"0.4"`
}

// RecommendationResponse pairs the caller's weights with ranked places
type RecommendationResponse struct {
	Weights []CategoryWeight   `json:"weights"`
	Places  []RecommendedPlace `json:"places"`
}

// RoutePoint is one coordinate of a route optimization request
type RoutePoint struct {
	Name      string  `json:"name" binding:"omitempty,max=100"`
	Latitude  float64 `json:"latitude" binding:"required,latitude"`
	Longitude float64 `json:"longitude" binding:"required,longitude"`
}

// RouteRequest asks for a recommended route through selected places
type RouteRequest struct {
	Origin      RoutePoint   `json:"origin" binding:"required"`
	Destination RoutePoint   `json:"destination" binding:"required"`
	Waypoints   []RoutePoint `json:"waypoints" binding:"max=5,dive"`
}

// RouteResponse is the optimized route summary
type RouteResponse struct {
	DistanceMeters  int `json:"distanceMeters" example:"10250"`
	DurationSeconds int `json:"durationSeconds" example:"1530"`
}
