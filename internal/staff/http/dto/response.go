package dto

import (
	"time"

	"github.com/samber/lo"

	"github.com/allisson/credvault/internal/httputil"
	staffDomain "github.com/allisson/credvault/internal/staff/domain"
)

// StaffResponse represents a staff account in API responses. The password hash is never exposed.
type StaffResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// MapStaffToResponse converts a domain staff account to an API response.
func MapStaffToResponse(staff *staffDomain.Staff) StaffResponse {
	return StaffResponse{
		ID:        staff.ID.String(),
		Name:      staff.Name,
		Email:     staff.Email,
		Role:      string(staff.Role),
		CreatedAt: staff.CreatedAt,
		UpdatedAt: staff.UpdatedAt,
	}
}

// ListStaffResponse represents a page of staff accounts in API responses.
type ListStaffResponse struct {
	Staff      []StaffResponse     `json:"staff"`
	Pagination httputil.Pagination `json:"pagination"`
}

// MapStaffToListResponse converts a page of staff accounts.
func MapStaffToListResponse(staff []*staffDomain.Staff, offset, limit, total int) ListStaffResponse {
	return ListStaffResponse{
		Staff: lo.Map(staff, func(s *staffDomain.Staff, _ int) StaffResponse {
			return MapStaffToResponse(s)
		}),
		Pagination: httputil.Pagination{Limit: limit, Offset: offset, Total: total},
	}
}
