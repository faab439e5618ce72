package dto

import (
	"github.com/kingrain94/support-desk-api/internal/domain"
)

func NewAuthUser(user *domain.User, tenant *domain.Tenant) AuthUser {
	return AuthUser{
		ID:         user.ID,
		Email:      user.Email,
		FirstName:  user.FirstName,
		LastName:   user.LastName,
		FullName:   user.FullName(),
		Role:       string(user.Role),
		TenantID:   user.TenantID,
		TenantName: tenant.Name,
		Phone:      user.Phone,
	}
}

// FromTicketView converts a joined ticket row to its response
func FromTicketView(v *domain.TicketView) *TicketResponse {
	return &TicketResponse{
		ID:                v.ID,
		Number:            v.Number,
		Subject:           v.Subject,
		Description:       v.Description,
		Priority:          string(v.Priority),
		Status:            string(v.Status),
		Module:            deref(v.Module),
		Category:          deref(v.Feature),
		AttachmentURL:     deref(v.AttachmentURL),
		ClientID:          v.ClientID,
		ClientName:        v.ClientName(),
		AssignedAgentID:   deref(v.AssignedAgentID),
		AssignedAgentName: v.AgentName(),
		CreatedAt:         v.CreatedAt,
		UpdatedAt:         v.UpdatedAt,
	}
}

func FromTicketViews(views []domain.TicketView) []TicketResponse {
	responses := make([]TicketResponse, len(views))
	for i := range views {
		responses[i] = *FromTicketView(&views[i])
	}
	return responses
}

// FromTicketDocuments converts search hits to responses
func FromTicketDocuments(docs []domain.TicketDocument) []TicketResponse {
	responses := make([]TicketResponse, len(docs))
	for i, doc := range docs {
		responses[i] = TicketResponse{
			ID:                doc.ID,
			Number:            doc.Number,
			Subject:           doc.Subject,
			Description:       doc.Description,
			Priority:          doc.Priority,
			Status:            doc.Status,
			Module:            doc.Module,
			Category:          doc.Feature,
			AttachmentURL:     doc.AttachmentURL,
			ClientID:          doc.ClientID,
			ClientName:        doc.ClientName,
			AssignedAgentID:   doc.AssignedAgentID,
			AssignedAgentName: doc.AssignedAgentName,
			CreatedAt:         doc.CreatedAt,
			UpdatedAt:         doc.UpdatedAt,
		}
	}
	return responses
}

func FromUser(user *domain.User, tenantName string) UserResponse {
	return UserResponse{
		ID:         user.ID,
		Email:      user.Email,
		FirstName:  user.FirstName,
		LastName:   user.LastName,
		FullName:   user.FullName(),
		Role:       string(user.Role),
		Phone:      user.Phone,
		IsActive:   user.IsActive,
		TenantName: tenantName,
		CreatedAt:  user.CreatedAt,
	}
}

func FromStaff(user *domain.User) StaffResponse {
	return StaffResponse{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		FullName:  user.FullName(),
		Phone:     user.Phone,
	}
}

func FromBookingView(v *domain.BookingView) *BookingResponse {
	return &BookingResponse{
		ID:             v.ID,
		ClientID:       v.ClientID,
		ClientName:     v.ClientName(),
		ConsultantID:   v.ConsultantID,
		ConsultantName: v.ConsultantName(),
		StartTime:      v.StartTime,
		EndTime:        v.EndTime,
		ServiceType:    v.ServiceType,
		LocationType:   string(v.LocationType),
		Address:        deref(v.Address),
		Instructions:   deref(v.Instructions),
		TotalAmount:    v.TotalAmount,
		Status:         string(v.Status),
		CreatedAt:      v.CreatedAt,
	}
}

func FromBookingViews(views []domain.BookingView) []BookingResponse {
	responses := make([]BookingResponse, len(views))
	for i := range views {
		responses[i] = *FromBookingView(&views[i])
	}
	return responses
}

func FromTenant(t *domain.Tenant) *TenantResponse {
	return &TenantResponse{
		ID:           t.ID,
		Name:         t.Name,
		Subdomain:    t.Subdomain,
		CustomDomain: deref(t.CustomDomain),
		LogoURL:      deref(t.LogoURL),
		PrimaryColor: t.PrimaryColor,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
