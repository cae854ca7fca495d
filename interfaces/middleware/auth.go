package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"

	"tubelens/domain/dto"
	"tubelens/domain/model"
	"tubelens/domain/repository"
	"tubelens/infrastructure/configuration"
)

// Auth guards a route group with Bearer JWT. The claims' user must still
// exist; the verified user name is stored in the context as "user_name".
func Auth(userRepository repository.IUser) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		res := dto.Res{ResponseCode: "401", ResponseMessage: "Unauthorized"}

		authorization := ctx.Request.Header.Get("Authorization")
		if authorization == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, res)
			return
		}
		parts := strings.Split(authorization, "Bearer ")
		if len(parts) != 2 {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, res)
			return
		}

		userClaims, token, err := getClaim(parts[1], configuration.C.App.SecretKey)
		if token == nil || !token.Valid {
			res.ResponseMessage = tokenErrorMessage(err)
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, res)
			return
		}

		if _, err := userRepository.GetByUserName(ctx.Request.Context(), userClaims.UserName); err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, res)
			return
		}

		ctx.Set("user_name", userClaims.UserName)
		ctx.Next()
	}
}

func tokenErrorMessage(err error) string {
	var ve *jwt.ValidationError
	if errors.As(err, &ve) {
		if ve.Errors&jwt.ValidationErrorMalformed != 0 {
			return "That's not even a token"
		}
		if ve.Errors&(jwt.ValidationErrorExpired|jwt.ValidationErrorNotValidYet) != 0 {
			// Token is either expired or not active yet
			return "Timing is everything"
		}
		return fmt.Sprintf("Couldn't handle this token:%v", err)
	}
	return "Unauthorized"
}

func getClaim(tokenString, secretKey string) (model.UserClaims, *jwt.Token, error) {
	var userClaims model.UserClaims
	token, err := jwt.ParseWithClaims(
		tokenString,
		&userClaims,
		func(token *jwt.Token) (interface{}, error) {
			return []byte(secretKey), nil
		},
	)
	return userClaims, token, err
}
