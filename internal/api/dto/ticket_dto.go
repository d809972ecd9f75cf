package dto

import (
	"time"

	"github.com/spec-kit/ticket-tracker/internal/domain"
)

// CreateTicketRequest payload. Any status sent by the caller is ignored.
type CreateTicketRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	NewProduct  *string `json:"new_product"`
}

// AnswerTicketRequest payload.
type AnswerTicketRequest struct {
	Answer *string             `json:"answer"`
	Status domain.TicketStatus `json:"status"`
}

// UpdateStatusRequest payload.
type UpdateStatusRequest struct {
	Status domain.TicketStatus `json:"status"`
}

// TicketResponse represents a stored ticket.
type TicketResponse struct {
	ID          int64               `json:"id"`
	Title       string              `json:"title"`
	Description *string             `json:"description"`
	NewProduct  *string             `json:"new_product"`
	Status      domain.TicketStatus `json:"status"`
	StatusName  string              `json:"status_name"`
	Answer      *string             `json:"answer"`
	CreatedBy   string              `json:"created_by"`
	Created     time.Time           `json:"created"`
	Updated     *time.Time          `json:"updated"`
}

// TicketViewResponse represents a ticket joined with its product and firm.
type TicketViewResponse struct {
	ID          int64               `json:"id"`
	Title       string              `json:"title"`
	Description *string             `json:"description"`
	NewProduct  *string             `json:"new_product"`
	Status      domain.TicketStatus `json:"status"`
	StatusName  string              `json:"status_name"`
	Answer      *string             `json:"answer"`
	CreatedBy   string              `json:"created_by"`
	Created     time.Time           `json:"created"`
	Updated     *time.Time          `json:"updated"`
	ProductName *string             `json:"product_name"`
	FirmName    *string             `json:"firm_name"`
}

// LinkProductRequest payload.
type LinkProductRequest struct {
	ProductID int64 `json:"product_id"`
}

// LinkUserRequest payload.
type LinkUserRequest struct {
	UserID string `json:"user_id"`
}

// ProductLinkResponse represents a ticket↔product link.
type ProductLinkResponse struct {
	ID        int64 `json:"id"`
	TicketID  int64 `json:"ticket_id"`
	ProductID int64 `json:"product_id"`
}

// UserLinkResponse represents a ticket↔user link.
type UserLinkResponse struct {
	ID       int64  `json:"id"`
	UserID   string `json:"user_id"`
	TicketID int64  `json:"ticket_id"`
}
