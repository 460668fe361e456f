package models

// Shelf is the read view of every category sharing one label.
type Shelf struct {
	Items      int      `json:"items"`
	Categories []string `json:"categories"`
}
