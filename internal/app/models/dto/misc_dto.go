package dto

import "github.com/yigit/memorial/internal/app/models"

// CreateReferenceRequest is the body of POST on a reference collection
type CreateReferenceRequest struct {
	Title string `json:"title" binding:"required,notblank,max=255" example:"Student"`
}

// UpdateReferenceRequest is the body of PUT on a reference collection
type UpdateReferenceRequest struct {
	ID    int64  `json:"id" binding:"required,min=1" example:"1"`
	Title string `json:"title" binding:"required,notblank,max=255" example:"Doctor"`
}

// TrackVisitorRequest is the body of POST /track-visitor
type TrackVisitorRequest struct {
	IP string `json:"ip" example:"203.0.113.7"`
}

// VisitorListResponse is the admin visitor report
type VisitorListResponse struct {
	Visitors        []models.Visitor `json:"visitors"`
	TotalVisitCount int64            `json:"total_visit_count" example:"1024"`
}

// VisitorTotalResponse is the public visitor counter
type VisitorTotalResponse struct {
	Success         bool  `json:"success" example:"true"`
	TotalVisitCount int64 `json:"total_visit_count" example:"1024"`
}

// UploadResponse is the body of POST /upload
type UploadResponse struct {
	Success      bool     `json:"success" example:"true"`
	ProfileName  *string  `json:"profileName" example:"profile_pictures/portrait.jpg"`
	GalleryNames []string `json:"galleryNames"`
}

// ImportResponse is the body of POST /people/import.
// Error is set only on failure; the summary fields only on success.
type ImportResponse struct {
	Success      bool   `json:"success" example:"true"`
	Error        string `json:"error,omitempty"`
	RowsRead     *int   `json:"rowsRead,omitempty" example:"2500"`
	RowsInserted *int64 `json:"rowsInserted,omitempty" example:"2498"`
	Checksum     string `json:"checksum,omitempty" example:"9f1c2a6b3e4d5f60"`
}

// DashboardContextResponse describes the session that reached a dashboard route
type DashboardContextResponse struct {
	Role     models.RoleType `json:"role" example:"ADMIN"`
	Name     string          `json:"name" example:"Admin User"`
	BasePath string          `json:"basePath" example:"/dashboard/admin"`
	Path     string          `json:"path" example:"/dashboard/admin/people"`
}

// ReferenceOption is the id and title pair served to public filter lists
type ReferenceOption struct {
	ID    int64  `json:"id" example:"1"`
	Title string `json:"title" example:"Student"`
}

// NewReferenceOptions projects lookup items onto their public form
func NewReferenceOptions(items []models.ReferenceItem) []ReferenceOption {
	options := make([]ReferenceOption, 0, len(items))
	for _, item := range items {
		options = append(options, ReferenceOption{ID: item.ID, Title: item.Title})
	}
	return options
}
