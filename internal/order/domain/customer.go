package domain

import (
	"time"

	"github.com/google/uuid"
)

type Customer struct {
	ID             uuid.UUID  `json:"id"`
	FirstName      string     `json:"firstName"`
	LastName       string     `json:"lastName"`
	Email          string     `json:"email"`
	Phone          string     `json:"phone"`
	DocumentNumber *string    `json:"documentNumber"`
	DateOfBirth    *time.Time `json:"dateOfBirth"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      *time.Time `json:"updatedAt"`
	IsActive       bool       `json:"isActive"`
}

func NewCustomer(firstName, lastName, email, phone string, documentNumber *string, dateOfBirth *time.Time) (Customer, []Event) {
	c := Customer{
		ID:             uuid.New(),
		FirstName:      firstName,
		LastName:       lastName,
		Email:          email,
		Phone:          phone,
		DocumentNumber: documentNumber,
		DateOfBirth:    dateOfBirth,
		CreatedAt:      time.Now().UTC(),
		IsActive:       true,
	}
	return c, []Event{entityChanged(EntityCustomer, ChangeCreated, c)}
}

func (c Customer) Update(firstName, lastName, email, phone string) (Customer, []Event) {
	now := time.Now().UTC()
	c.FirstName = firstName
	c.LastName = lastName
	c.Email = email
	c.Phone = phone
	c.UpdatedAt = &now
	return c, []Event{entityChanged(EntityCustomer, ChangeUpdated, c)}
}

func (c Customer) Deactivate() (Customer, []Event) {
	now := time.Now().UTC()
	c.IsActive = false
	c.UpdatedAt = &now
	return c, []Event{entityChanged(EntityCustomer, ChangeUpdated, c)}
}
