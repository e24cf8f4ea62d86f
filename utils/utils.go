package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"bus-registration/types"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/gosimple/slug"
	"github.com/jinzhu/now"
	"gorm.io/gorm"
)

var validate = validator.New()

// ValidateStruct runs the shared validator instance over a request DTO.
func ValidateStruct(input interface{}) error {
	return validate.Struct(input)
}

// GenerateUniqueSlug slugifies base and appends a numeric suffix until the
// slug is free in the given table.
func GenerateUniqueSlug(tx *gorm.DB, model interface{}, base string) string {
	candidate := slug.Make(base)
	result := candidate
	i := 1

	for {
		var count int64
		tx.Model(model).Where("slug = ?", result).Count(&count)
		if count == 0 {
			break
		}
		result = fmt.Sprintf("%s-%d", candidate, i)
		i++
	}

	return result
}

const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GenerateUniqueCode produces a random upper-case code of the given length,
// retrying until it is unique in the model's column.
func GenerateUniqueCode(tx *gorm.DB, model interface{}, column string, length int) (string, error) {
	for {
		code, err := randomCode(length)
		if err != nil {
			return "", err
		}

		var count int64
		if err := tx.Model(model).Where(column+" = ?", code).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return code, nil
		}
	}
}

func randomCode(length int) (string, error) {
	var sb strings.Builder
	max := big.NewInt(int64(len(codeAlphabet)))
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		sb.WriteByte(codeAlphabet[n.Int64()])
	}
	return sb.String(), nil
}

// UsernameFromClaims pulls the username out of the JWT claims attached by
// the auth middleware; empty string when absent.
func UsernameFromClaims(c *fiber.Ctx) string {
	claims, ok := c.Locals("user").(jwt.MapClaims)
	if !ok {
		return ""
	}
	username, _ := claims["username"].(string)
	return username
}

// EndOfToday returns the latest instant of the current day; installment due
// dates up to this point count as pending.
func EndOfToday() time.Time {
	return now.EndOfDay()
}

// TitleCase upper-cases the first letter of every word, used for bus record labels.
func TitleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + strings.ToLower(w[size:])
	}
	return strings.Join(words, " ")
}

// CreateLogEntry captures a request/response pair for the async logger.
// Header and body bytes are deep-copied since fiber reuses its buffers after
// the handler returns.
func CreateLogEntry(c *fiber.Ctx) types.LogEntry {
	requestBody := string(append([]byte(nil), c.Body()...))
	responseBody := string(append([]byte(nil), c.Response().Body()...))

	requestHeaders := make([]byte, len(c.Request().Header.Header()))
	copy(requestHeaders, c.Request().Header.Header())
	responseHeaders := make([]byte, len(c.Response().Header.Header()))
	copy(responseHeaders, c.Response().Header.Header())

	return types.LogEntry{
		Method:          string([]byte(c.Method())),
		URL:             string([]byte(c.OriginalURL())),
		ClientIP:        c.IP(),
		RequestBody:     requestBody,
		ResponseBody:    responseBody,
		RequestHeaders:  string(requestHeaders),
		ResponseHeaders: string(responseHeaders),
		StatusCode:      c.Response().StatusCode(),
		CreatedAt:       time.Now(),
	}
}
