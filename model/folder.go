package model

type Folder struct {
	ID     uint   `gorm:"primaryKey;autoIncrement;index" json:"id"`
	UserID string `json:"-"`
	Name   string `gorm:"not null" json:"name"`

	// Root folders have no parent
	ParentID *uint `json:"parent_id,omitempty"`

	CreatedAt int64 `gorm:"not null" json:"created_at"`
}
