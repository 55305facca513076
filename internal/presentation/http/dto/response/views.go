package response

import (
	"time"

	"github.com/serendib-tours/booking-api/internal/domain/entity"
)

// CustomerQuotation is the quotation as a customer sees it: status carries
// the effective status, so an offer past its validity reads as expired.
func CustomerQuotation(q *entity.Quotation) entity.Quotation {
	view := *q
	if view.Effective != "" {
		view.Status = view.Effective
	}
	view.Effective = ""
	return view
}

// AdminUser is the public shape of a back-office account
type AdminUser struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	Role        string  `json:"role"`
	LastLoginAt *string `json:"last_login_at,omitempty"`
}

// NewAdminUser builds the public shape of user
func NewAdminUser(user *entity.AdminUser) AdminUser {
	out := AdminUser{
		ID:    user.ID.String(),
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	}
	if user.LastLoginAt != nil {
		formatted := user.LastLoginAt.UTC().Format(time.RFC3339)
		out.LastLoginAt = &formatted
	}
	return out
}
