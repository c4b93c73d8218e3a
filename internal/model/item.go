package model

// Item is one entry on the shopping list.
// ID and Name never change after creation; only Complete does.
type Item struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Complete bool   `json:"complete"`
}

// GalleryImage is a single picture in a gallery's fixed, cyclic sequence.
type GalleryImage struct {
	Src         string `json:"src"`
	Title       string `json:"title"`
	Description string `json:"description"`
}
