// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// MediaFolder is a node in the media library tree. Root folders have no parent.
type MediaFolder struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	ParentID  *uuid.UUID `json:"parent_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// MediaAsset represents a file uploaded to S3-compatible object storage.
// Metadata is stored in PostgreSQL; the file itself lives in the bucket.
type MediaAsset struct {
	ID           uuid.UUID  `json:"id"`
	FolderID     *uuid.UUID `json:"folder_id,omitempty"`
	Filename     string     `json:"filename"`
	OriginalName string     `json:"original_name"`
	ContentType  string     `json:"content_type"`
	SizeBytes    int64      `json:"size_bytes"`
	Width        *int       `json:"width,omitempty"`
	Height       *int       `json:"height,omitempty"`
	Bucket       string     `json:"bucket"`
	S3Key        string     `json:"s3_key"`
	ThumbS3Key   *string    `json:"thumb_s3_key,omitempty"`
	AltText      *string    `json:"alt_text,omitempty"`
	UploaderID   uuid.UUID  `json:"uploader_id"`
	CreatedAt    time.Time  `json:"created_at"`

	// URL and ThumbURL are filled in by handlers from the storage client.
	URL      string `json:"url,omitempty"`
	ThumbURL string `json:"thumb_url,omitempty"`
}

// IsRaster reports whether the asset is a bitmap image whose dimensions
// can be read. SVG is an image but has no intrinsic pixel size.
func (m *MediaAsset) IsRaster() bool {
	return strings.HasPrefix(m.ContentType, "image/") && m.ContentType != "image/svg+xml"
}
