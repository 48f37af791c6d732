package model

// ProfileUpdate carries a partial profile change. Nil fields keep their stored value.
type ProfileUpdate struct {
	DisplayName     *string `json:"display_name"`
	ProfileImageURL *string `json:"profile_image_url"`
	IsPublic        *bool   `json:"is_public"`
}

type UserStats struct {
	TotalTrips       int64 `db:"total_trips" json:"total_trips"`
	CountriesVisited int64 `db:"countries_visited" json:"countries_visited"`
	TotalLikes       int64 `db:"total_likes" json:"total_likes"`
}
