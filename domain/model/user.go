package model

import (
	"time"

	"github.com/golang-jwt/jwt"
)

// User is a registered dashboard account. The embedded subscription window
// columns keep the at-most-one-active-window invariant trivially true.
type User struct {
	ID                int        `json:"id" gorm:"primaryKey;autoIncrement"`
	Name              string     `json:"name"`
	UserName          string     `json:"user_name" gorm:"uniqueIndex;column:user_name"`
	Password          string     `json:"-"`
	SubscriptionPlan  string     `json:"subscription_plan,omitempty" gorm:"column:subscription_plan"`
	SubscriptionStart *time.Time `json:"subscription_start,omitempty" gorm:"column:subscription_start"`
	SubscriptionEnd   *time.Time `json:"subscription_end,omitempty" gorm:"column:subscription_end"`
	CreatedAt         time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt         time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

func (User) TableName() string { return "users" }

// ActiveSubscription returns the user's subscription window if one covers now.
func (u *User) ActiveSubscription(now time.Time) *Subscription {
	if u.SubscriptionStart == nil || u.SubscriptionEnd == nil {
		return nil
	}
	sub := &Subscription{PlanID: u.SubscriptionPlan, Start: *u.SubscriptionStart, End: *u.SubscriptionEnd}
	if !sub.Active(now) {
		return nil
	}
	return sub
}

// UserClaims are the JWT claims carried by API tokens.
type UserClaims struct {
	UserName string `json:"user_name"`
	jwt.StandardClaims
}

// ReqLogin is the login request body.
type ReqLogin struct {
	UserName string `json:"user_name" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ReqRegister is the registration request body.
type ReqRegister struct {
	Name     string `json:"name" binding:"required"`
	UserName string `json:"user_name" binding:"required"`
	Password string `json:"password" binding:"required"`
}
