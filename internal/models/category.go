package models

import "time"

// ItemSnapshot is a copy of an Item taken when a category is written.
// It is not kept in sync: renaming or deleting the source Item leaves
// already-embedded snapshots untouched.
type ItemSnapshot struct {
	ID   string `json:"id" gorm:"type:varchar(36)" bson:"id"`
	Name string `json:"name" gorm:"type:varchar(50)" bson:"name"`
}

// Category labels ("food", "hygiene", ...) exactly one item snapshot.
type Category struct {
	ID        string       `json:"id" gorm:"primaryKey;type:varchar(36)" bson:"_id"`
	Name      string       `json:"name" gorm:"type:varchar(255);index" bson:"name"`
	Item      ItemSnapshot `json:"item" gorm:"embedded;embeddedPrefix:item_" bson:"item"`
	Version   int          `json:"version" gorm:"not null" bson:"version"` // bumped on every update
	CreatedAt time.Time    `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt" bson:"updatedAt"`
}

// Well-known category labels. Any 4-255 character label is accepted.
const (
	CategoryFood    = "food"
	CategoryHygiene = "hygiene"
)
