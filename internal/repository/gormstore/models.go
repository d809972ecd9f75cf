package gormstore

import (
	"time"

	"gorm.io/gorm"

	"github.com/spec-kit/ticket-tracker/internal/domain"
)

type ticketModel struct {
	ID          int64      `gorm:"primaryKey"`
	Title       string     `gorm:"size:255;not null;index"`
	Description *string    `gorm:"type:text"`
	NewProduct  *string    `gorm:"type:text"`
	Status      int16      `gorm:"not null;default:1"`
	Answer      *string    `gorm:"type:text"`
	CreatedBy   string     `gorm:"size:191;not null"`
	Created     time.Time  `gorm:"not null"`
	Updated     *time.Time
}

func (ticketModel) TableName() string {
	return "tickets"
}

type productModel struct {
	ID   int64  `gorm:"primaryKey"`
	Name string `gorm:"size:255;not null"`
}

func (productModel) TableName() string {
	return "products"
}

type firmModel struct {
	ID   int64  `gorm:"primaryKey"`
	Name string `gorm:"size:255;not null"`
}

func (firmModel) TableName() string {
	return "firms"
}

type firmProductModel struct {
	ID        int64         `gorm:"primaryKey"`
	FirmID    int64         `gorm:"not null"`
	ProductID int64         `gorm:"not null;index"`
	Firm      *firmModel    `gorm:"foreignKey:FirmID"`
	Product   *productModel `gorm:"foreignKey:ProductID"`
}

func (firmProductModel) TableName() string {
	return "firm_products"
}

// Ticket-side foreign keys cascade so deleting a ticket removes its links.
type productTicketModel struct {
	ID        int64         `gorm:"primaryKey"`
	TicketID  int64         `gorm:"not null;index"`
	ProductID int64         `gorm:"not null"`
	Ticket    *ticketModel  `gorm:"foreignKey:TicketID;constraint:OnDelete:CASCADE"`
	Product   *productModel `gorm:"foreignKey:ProductID"`
}

func (productTicketModel) TableName() string {
	return "product_tickets"
}

type appUserTicketModel struct {
	ID        int64        `gorm:"primaryKey"`
	AppUserID string       `gorm:"size:191;not null;index"`
	TicketID  int64        `gorm:"not null"`
	Ticket    *ticketModel `gorm:"foreignKey:TicketID;constraint:OnDelete:CASCADE"`
}

func (appUserTicketModel) TableName() string {
	return "app_user_tickets"
}

// AutoMigrate creates or updates the schema of every store table.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&ticketModel{},
		&productModel{},
		&firmModel{},
		&firmProductModel{},
		&productTicketModel{},
		&appUserTicketModel{},
	)
}

func toTicketModel(ticket *domain.Ticket) ticketModel {
	return ticketModel{
		ID:          ticket.ID,
		Title:       ticket.Title,
		Description: ticket.Description,
		NewProduct:  ticket.NewProduct,
		Status:      int16(ticket.Status),
		Answer:      ticket.Answer,
		CreatedBy:   ticket.CreatedBy,
		Created:     ticket.Created,
		Updated:     ticket.Updated,
	}
}

func (m ticketModel) toDomain() *domain.Ticket {
	return &domain.Ticket{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		NewProduct:  m.NewProduct,
		Status:      domain.TicketStatus(m.Status),
		Answer:      m.Answer,
		CreatedBy:   m.CreatedBy,
		Created:     m.Created,
		Updated:     m.Updated,
	}
}
