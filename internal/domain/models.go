package domain

import "time"

// Route represents a named climbing route with a difficulty grade and a GPS
// position. GPS coordinates are opaque float pairs; no geospatial validation
// is performed.
//
// Fields:
//   - ID: store-assigned surrogate key; nil until the row is persisted, so
//     creation payloads omit it and every read returns it populated.
//   - Name: human-readable route name.
//   - Difficulty: canonical grade, stored as its textual label.
//   - Latitude / Longitude: GPS position.
//   - CreatedAt: insertion timestamp used for recency ordering; managed by
//     GORM and not part of the client contract.
type Route struct {
	ID         *int32           `json:"id,omitempty" gorm:"primaryKey;autoIncrement"`
	Name       string           `json:"name"         gorm:"type:varchar(255);not null"`
	Difficulty DifficultyRating `json:"difficulty"   gorm:"type:varchar(8);not null"`
	Latitude   float64          `json:"latitude"     gorm:"not null"`
	Longitude  float64          `json:"longitude"    gorm:"not null"`
	CreatedAt  time.Time        `json:"-"            gorm:"index"`
}

// TableName returns the database table name for Route.
func (Route) TableName() string { return "routes" }

// Climber represents a registered user identified by username.
type Climber struct {
	ID        *int32    `json:"id,omitempty" gorm:"primaryKey;autoIncrement"`
	Username  string    `json:"username"     gorm:"type:varchar(64);not null"`
	CreatedAt time.Time `json:"-"            gorm:"index"`
}

// TableName returns the database table name for Climber.
func (Climber) TableName() string { return "climbers" }

// Review is a climber's dated, rated, free-text assessment of a route. It is
// the request/response body for the review endpoints; the rating is clamped
// on decode and the text and date are stored verbatim.
type Review struct {
	Rating         Rating `json:"rating"`
	Review         string `json:"review"`
	CompletionDate Date   `json:"completion_date"`
}

// NewReview builds a Review, clamping the raw rating into range.
func NewReview(rating int, text string, completionDate Date) Review {
	return Review{
		Rating:         NewRating(rating),
		Review:         text,
		CompletionDate: completionDate,
	}
}

// Climb is the persisted association of a Review with a climber and a route.
// The natural key for lookup/update/delete is (climber_id, route_id); ID is a
// surrogate assigned at creation. The composite unique index makes the
// one-review-per-pair invariant physical, and the FK associations cascade so
// deleting a climber or route removes their climbs.
type Climb struct {
	ID             *int32    `json:"id,omitempty"    gorm:"primaryKey;autoIncrement"`
	ClimberID      int32     `json:"climber_id"      gorm:"not null;uniqueIndex:ux_climbs_climber_route,priority:1"`
	RouteID        int32     `json:"route_id"        gorm:"not null;uniqueIndex:ux_climbs_climber_route,priority:2"`
	Rating         Rating    `json:"rating"          gorm:"not null"`
	Review         string    `json:"review"          gorm:"type:text;not null"`
	CompletionDate Date      `json:"completion_date" gorm:"type:date;not null"`
	CreatedAt      time.Time `json:"-"`

	// FK associations; climbs are cascade-deleted with their climber/route.
	Climber Climber `json:"-" gorm:"foreignKey:ClimberID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Route   Route   `json:"-" gorm:"foreignKey:RouteID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Climb.
func (Climb) TableName() string { return "climbs" }
