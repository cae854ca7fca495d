package usecase

import (
	"context"
	"crypto/md5"
	"fmt"
	"time"

	"tubelens/domain/dto"
	"tubelens/domain/model"
	"tubelens/domain/repository"
	"tubelens/infrastructure/configuration"
	"tubelens/infrastructure/logger"
	"tubelens/infrastructure/utils"
)

type IUserUsecase interface {
	Login(ctx context.Context, req model.ReqLogin) dto.Res
	Register(ctx context.Context, req model.ReqRegister) dto.Res
	Profile(ctx context.Context, userName string) dto.Res
}

type UserUsecase struct {
	userRepository repository.IUser
}

func NewUserUsecase(userRepository repository.IUser) IUserUsecase {
	return &UserUsecase{userRepository: userRepository}
}

func hashPassword(password string) string {
	return fmt.Sprintf("%x", md5.Sum([]byte(password)))
}

func (u *UserUsecase) Login(ctx context.Context, req model.ReqLogin) dto.Res {
	var res dto.Res
	res.ResponseCode = "401"
	res.ResponseMessage = "Unauthorized"

	user, err := u.userRepository.GetByUserName(ctx, req.UserName)
	if err != nil {
		logger.GetLogger().WithField("user_name", req.UserName).Info("login attempt for unknown user")
		return res
	}
	if user.Password != hashPassword(req.Password) {
		return res
	}

	now := utils.GetCurrentTime()
	token, err := utils.GenerateToken(map[string]interface{}{
		"user_name": user.UserName,
		"iss":       user.UserName,
		"iat":       now.Unix(),
		"exp":       now.Add(24 * time.Hour).Unix(),
	}, configuration.C.App.SecretKey)
	if err != nil {
		res.ResponseCode = "500"
		res.ResponseMessage = "Error while generating token"
		return res
	}

	res.ResponseCode = "00"
	res.ResponseMessage = "Success"
	res.Data = map[string]interface{}{
		"access_token": token,
		"user_name":    user.UserName,
		"name":         user.Name,
	}
	return res
}

func (u *UserUsecase) Register(ctx context.Context, req model.ReqRegister) dto.Res {
	var res dto.Res

	if _, err := u.userRepository.GetByUserName(ctx, req.UserName); err == nil {
		res.ResponseCode = "409"
		res.ResponseMessage = "User already exists"
		return res
	}

	user := model.User{
		Name:     req.Name,
		UserName: req.UserName,
		Password: hashPassword(req.Password),
	}
	if err := u.userRepository.CreateUser(ctx, user); err != nil {
		res.ResponseCode = "500"
		res.ResponseMessage = "Error while creating user"
		return res
	}

	res.ResponseCode = "00"
	res.ResponseMessage = "Success"
	return res
}

// Profile returns the user record with the subscription state resolved.
func (u *UserUsecase) Profile(ctx context.Context, userName string) dto.Res {
	var res dto.Res

	user, err := u.userRepository.GetByUserName(ctx, userName)
	if err != nil {
		res.ResponseCode = "404"
		res.ResponseMessage = "User not found"
		return res
	}

	res.ResponseCode = "00"
	res.ResponseMessage = "Success"
	res.Data = map[string]interface{}{
		"user":         user,
		"subscription": user.ActiveSubscription(utils.GetCurrentTime()),
	}
	return res
}
