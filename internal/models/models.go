package models

import "time"

// MapPoint represents a user-created point on the map
type MapPoint struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Lat         float64   `json:"lat"`
	Lng         float64   `json:"lng"`
	ImageURL    *string   `json:"image_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Friend represents a friend shown on the map with their location
type Friend struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Status    *string   `json:"status"`
	AvatarURL *string   `json:"avatar_url"`
	Country   *string   `json:"country"`
	City      *string   `json:"city"`
	Lat       float64   `json:"lat"`
	Lng       float64   `json:"lng"`
	CreatedAt time.Time `json:"created_at"`
}

// Postcard represents a user-submitted postcard pinned to the map.
// Comments is a placeholder counter kept for the frontend contract; no
// operation mutates it yet.
type Postcard struct {
	ID              int64     `json:"id"`
	UserName        string    `json:"user_name"`
	UserAvatar      *string   `json:"user_avatar"`
	Location        string    `json:"location"`
	Country         string    `json:"country"`
	ImageURL        string    `json:"image_url"`
	Caption         string    `json:"caption"`
	PersonalMessage string    `json:"personal_message"`
	DateStamp       string    `json:"date_stamp"`
	Lat             float64   `json:"lat"`
	Lng             float64   `json:"lng"`
	Likes           int       `json:"likes"`
	Comments        int       `json:"comments"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
