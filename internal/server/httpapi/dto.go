package httpapi

import (
	"time"

	"github.com/vaultbox/vaultbox/internal/server/models"
)

type folderResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ParentID  *string   `json:"parent_id"`
	CreatedAt time.Time `json:"created_at"`
}

type fileResponse struct {
	ID        string    `json:"id"`
	Filename  string    `json:"filename"`
	FileType  string    `json:"file_type"`
	SizeBytes int64     `json:"size_bytes"`
	FolderID  *string   `json:"folder_id"`
	CreatedAt time.Time `json:"created_at"`
}

func toFolderResponse(f *models.Folder) folderResponse {
	return folderResponse{
		ID:        f.ID,
		Name:      f.Name,
		ParentID:  f.ParentID,
		CreatedAt: f.CreatedAt,
	}
}

func toFileResponse(f *models.FileRecord) fileResponse {
	return fileResponse{
		ID:        f.ID,
		Filename:  f.Filename,
		FileType:  f.FileType,
		SizeBytes: f.SizeBytes,
		FolderID:  f.FolderID,
		CreatedAt: f.CreatedAt,
	}
}
