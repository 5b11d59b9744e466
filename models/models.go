package models

import (
	"time"

	"github.com/google/uuid"
)

// Статус запроса (demand)
type DemandStatus string

const (
	DemandOpen    DemandStatus = "open"
	DemandClosed  DemandStatus = "closed"
	DemandExpired DemandStatus = "expired"
)

func (s DemandStatus) Valid() bool {
	switch s {
	case DemandOpen, DemandClosed, DemandExpired:
		return true
	}
	return false
}

// Статус переговоров по предложению
type NegotiationStatus string

const (
	NegotiationOpen     NegotiationStatus = "open"
	NegotiationRejected NegotiationStatus = "rejected"
	NegotiationApproved NegotiationStatus = "approved"
)

func (s NegotiationStatus) Valid() bool {
	switch s {
	case NegotiationOpen, NegotiationRejected, NegotiationApproved:
		return true
	}
	return false
}

// ParseNegotiationStatus принимает только известные значения статуса.
func ParseNegotiationStatus(raw string) (NegotiationStatus, bool) {
	s := NegotiationStatus(raw)
	return s, s.Valid()
}

// Сущность Пользователя
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Salt         string    `db:"salt" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}

// Сущность Компании
type Company struct {
	ID                uuid.UUID `db:"id" json:"id"`
	OwnerID           uuid.UUID `db:"owner_id" json:"ownerId"`
	Name              string    `db:"name" json:"name"`
	Residence         string    `db:"residence" json:"residence"`
	Specialization    string    `db:"specialization" json:"specialization"`
	Phone             string    `db:"phone" json:"phone"`
	ExternalCompanyID string    `db:"external_company_id" json:"externalCompanyId"`
	IsDeleted         bool      `db:"is_deleted" json:"isDeleted"`
	CreatedAt         time.Time `db:"created_at" json:"createdAt"`
}

// Сущность Запроса
type Demand struct {
	ID          uuid.UUID    `db:"id" json:"id"`
	CreatorID   uuid.UUID    `db:"creator_id" json:"creatorId"`
	Name        string       `db:"name" json:"name"`
	Budget      float64      `db:"budget" json:"budget"`
	Description string       `db:"description" json:"description"`
	Until       time.Time    `db:"until" json:"until"`
	Status      DemandStatus `db:"status" json:"status"`
	CreatedAt   time.Time    `db:"created_at" json:"createdAt"`
}

// Сущность Переговоров (предложение компании по запросу)
type Negotiation struct {
	ID         uuid.UUID         `db:"id" json:"id"`
	DemandID   uuid.UUID         `db:"demand_id" json:"demandId"`
	CompanyID  uuid.UUID         `db:"company_id" json:"companyId"`
	Price      float64           `db:"price" json:"price"`
	Status     NegotiationStatus `db:"status" json:"status"`
	LastChange time.Time         `db:"last_change" json:"lastChange"`
}

// Сущность Сообщения в переговорах
type Message struct {
	ID            uuid.UUID `db:"id" json:"id"`
	NegotiationID uuid.UUID `db:"negotiation_id" json:"negotiationId"`
	SenderID      uuid.UUID `db:"sender_id" json:"senderId"`
	Content       string    `db:"content" json:"content"`
	IsDeleted     bool      `db:"is_deleted" json:"isDeleted"`
	LastChange    time.Time `db:"last_change" json:"lastChange"`
}

// Сущность Уведомления
type Notification struct {
	ID          uuid.UUID `db:"id" json:"id"`
	UserID      uuid.UUID `db:"user_id" json:"userId"`
	Description string    `db:"description" json:"description"`
	Created     time.Time `db:"created" json:"created"`
}

// Фильтр списка запросов; нулевые поля не участвуют в отборе.
type DemandFilter struct {
	Status    DemandStatus
	CreatorID uuid.UUID
}

// Фильтр списка переговоров; нулевые поля не участвуют в отборе.
type NegotiationFilter struct {
	Status    NegotiationStatus
	DemandID  uuid.UUID
	CompanyID uuid.UUID
}
