// Package partyrepo persists customers and performers. Each table keeps one
// row per account.
package partyrepo

import (
	"freelance/internal/core/domain/model/kernel"
	"freelance/internal/core/domain/model/party"
)

// ProfileDTO holds the columns both party tables share.
type ProfileDTO struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	AccountID int64  `gorm:"not null;uniqueIndex"`
	Name      string `gorm:"size:255;not null"`
	Email     string `gorm:"size:320;not null"`
}

type CustomerDTO struct {
	ProfileDTO `gorm:"embedded"`
}

func (CustomerDTO) TableName() string {
	return "customers"
}

type PerformerDTO struct {
	ProfileDTO `gorm:"embedded"`
}

func (PerformerDTO) TableName() string {
	return "performers"
}

func customerToDomain(dto CustomerDTO) (*party.Customer, error) {
	return party.RestoreCustomer(kernel.ID(dto.ID), kernel.ID(dto.AccountID), dto.Name, dto.Email)
}

func performerToDomain(dto PerformerDTO) (*party.Performer, error) {
	return party.RestorePerformer(kernel.ID(dto.ID), kernel.ID(dto.AccountID), dto.Name, dto.Email)
}
