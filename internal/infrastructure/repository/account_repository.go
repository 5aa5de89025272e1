package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/arkenix/client-portal/internal/domain/account"
	"github.com/arkenix/client-portal/internal/infrastructure/db/models"
)

type AccountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) FindByUsername(ctx context.Context, username string) (*account.Account, error) {
	var row models.ClientAccount

	err := r.db.WithContext(ctx).First(&row, "username = ?", username).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, account.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find account by username: %w", err)
	}

	acc := &account.Account{
		ID:       row.ID,
		ClientID: row.ClientID,
		Username: row.Username,
		Password: row.Password,
	}
	if row.CompanyName != nil {
		acc.CompanyName = *row.CompanyName
	}
	return acc, nil
}
