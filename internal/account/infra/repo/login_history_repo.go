package repo

import (
	"context"

	"gorm.io/gorm"

	"TreeKingdom/internal/account/domain"
)

type LoginHistoryRepo struct {
	db *gorm.DB
}

func NewLoginHistoryRepo(db *gorm.DB) *LoginHistoryRepo {
	return &LoginHistoryRepo{
		db: db,
	}
}

func (r *LoginHistoryRepo) Save(ctx context.Context, history domain.LoginHistory) error {
	err := r.db.WithContext(ctx).Create(&history).Error
	if err != nil {
		return domain.ErrSystemUnavailable.WithData("uid", history.UId).WithCause(err)
	}
	return nil
}
