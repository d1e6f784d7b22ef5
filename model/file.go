package model

import "time"

type File struct {
	ID     uint   `gorm:"primaryKey;autoIncrement;index" json:"id"`
	UserID string `json:"-"`

	// Since we want to allow different users to have files with the same name
	// we keep the stored blobs under a separate random key
	FileKey string `json:"file_key"`

	// Name the file is presented and downloaded under. Either the name given
	// on upload or the original multipart file name
	Name   string `json:"name"`
	Format string `json:"format"`
	Size   int64  `json:"size"`

	// Files can live at the root, in which case FolderID is null
	FolderID *uint `json:"folder_id,omitempty"`

	// A sharable file may be read by anonymous visitors. SharableUntil is
	// optional and only consulted while Sharable is set
	Sharable      bool       `json:"sharable"`
	SharableUntil *time.Time `json:"sharable_until,omitempty"`

	CreatedAt int64 `gorm:"not null" json:"created_at"`
}
