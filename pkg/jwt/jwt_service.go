package jwt

import (
	"Treasury-System-Backend/domain"
	"Treasury-System-Backend/internal/utils"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

type (
	JWTService interface {
		GenerateTokenAdmin(adminID string, username string, isSuperuser bool) string
		ValidateTokenAdmin(token string) (*jwt.Token, error)
		GetAdminByToken(token string) (string, string, bool, error)
	}

	jwtAdminClaim struct {
		AdminID     string `json:"admin_id"`
		Username    string `json:"username"`
		IsSuperuser bool   `json:"is_superuser"`
		jwt.RegisteredClaims
	}

	jwtService struct {
		secretKey string
		issuer    string
	}
)

func getSecretKey() string {
	return utils.GetConfig("JWT_SECRET")
}

func NewJWTService() JWTService {
	return &jwtService{
		secretKey: getSecretKey(),
		issuer:    "TREASURY",
	}
}

func (j *jwtService) GenerateTokenAdmin(adminID string, username string, isSuperuser bool) string {
	claims := jwtAdminClaim{
		adminID,
		username,
		isSuperuser,
		jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour * 24)),
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tx, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		log.Println(err)
	}
	return tx
}

func (j *jwtService) parseToken(t_ *jwt.Token) (any, error) {
	if _, ok := t_.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method %v", t_.Header["alg"])
	}
	return []byte(j.secretKey), nil
}

func (j *jwtService) ValidateTokenAdmin(token string) (*jwt.Token, error) {
	return jwt.ParseWithClaims(token, &jwtAdminClaim{}, j.parseToken)
}

func (j *jwtService) GetAdminByToken(token string) (string, string, bool, error) {
	t_Token, err := j.ValidateTokenAdmin(token)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", "", false, domain.ErrTokenExpired
		}
		return "", "", false, domain.ErrTokenInvalid
	}
	if !t_Token.Valid {
		return "", "", false, domain.ErrTokenInvalid
	}

	claims := t_Token.Claims.(*jwtAdminClaim)
	return claims.AdminID, claims.Username, claims.IsSuperuser, nil
}
