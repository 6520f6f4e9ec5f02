package media

import "time"

// Photo is a stored visit photo. The file lives on local disk, the row
// carries enough metadata to rebuild a URL without touching the filesystem.
type Photo struct {
	ID           string    `gorm:"column:id;primaryKey" json:"id"`
	ClientID     int64     `gorm:"column:client_id;index" json:"client_id"`
	UserID       int64     `gorm:"column:user_id;index" json:"user_id"`
	OriginalName string    `gorm:"column:original_name" json:"original_name"`
	FilePath     string    `gorm:"column:file_path" json:"-"` // relative to the uploads dir
	MimeType     string    `gorm:"column:mime_type" json:"mime_type"`
	Size         int64     `gorm:"column:size" json:"size"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Photo) TableName() string { return "photos" }
