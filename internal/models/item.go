package models

import "time"

// Item is a catalog entry, independent of any category.
type Item struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)" bson:"_id"`
	Name      string    `json:"name" gorm:"type:varchar(50)" bson:"name"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// Snapshot copies the fields a category embeds.
func (i Item) Snapshot() ItemSnapshot {
	return ItemSnapshot{ID: i.ID, Name: i.Name}
}
