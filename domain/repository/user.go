package repository

import (
	"context"
	"time"

	"tubelens/domain/model"
)

// IUser defines the interface for user persistence.
type IUser interface {
	GetById(ctx context.Context, id int) (model.User, error)
	GetByUserName(ctx context.Context, userName string) (model.User, error)
	CreateUser(ctx context.Context, user model.User) error
	// SetSubscription replaces the user's subscription window. Start must not
	// be after end; a user holds at most one window.
	SetSubscription(ctx context.Context, userName, planID string, start, end time.Time) error
}
