package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Period states
const (
	PeriodOpen   = "open"
	PeriodClosed = "closed"
)

// Period is a time-windowed financial period: purchases, sales and
// expenses accumulated between StartDate and EndDate for one refinery.
// References are stored as raw ids; population happens client-side.
type Period struct {
	ID         primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	RefineryID primitive.ObjectID   `bson:"refineryId,omitempty" json:"refineryId,omitempty"`
	Purchases  []primitive.ObjectID `bson:"purchases,omitempty" json:"purchases,omitempty"`
	Sales      []primitive.ObjectID `bson:"sales,omitempty" json:"sales,omitempty"`
	Expenses   []primitive.ObjectID `bson:"expenses,omitempty" json:"expenses,omitempty"`
	Amount     float64              `bson:"amount" json:"amount"`
	StartDate  time.Time            `bson:"startDate" json:"startDate"`
	EndDate    time.Time            `bson:"endDate" json:"endDate"`
	Status     string               `bson:"status" json:"status"`
	Deleted    bool                 `bson:"deleted" json:"-"`
	CreatedAt  time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// CreatePeriodRequest is the period creation body
type CreatePeriodRequest struct {
	RefineryID string    `json:"refineryId"`
	Purchases  []string  `json:"purchases"`
	Sales      []string  `json:"sales"`
	Expenses   []string  `json:"expenses"`
	Amount     float64   `json:"amount"`
	StartDate  time.Time `json:"startDate" binding:"required"`
	EndDate    time.Time `json:"endDate" binding:"required"`
	Status     string    `json:"status"`
}

// UpdatePeriodRequest is the period update body; nil pointers mean
// "leave unchanged".
type UpdatePeriodRequest struct {
	Purchases []string   `json:"purchases"`
	Sales     []string   `json:"sales"`
	Expenses  []string   `json:"expenses"`
	Amount    *float64   `json:"amount"`
	StartDate *time.Time `json:"startDate"`
	EndDate   *time.Time `json:"endDate"`
	Status    *string    `json:"status"`
}
