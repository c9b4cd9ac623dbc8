package validation

import (
	"fmt"
	"strings"

	"kartim.link/models"

	"github.com/go-playground/validator/v10"
)

// validate paylaşılan validator örneği. Request DTO'ları struct tag'leriyle
// doğrulanır; istemciye her zaman İLK hata mesajı döner (400 gövdesinde).
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Profil ve QR slug'ları için ortak format kuralı.
	_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return models.IsValidSlug(fl.Field().String())
	})
	return v
}

// FirstError DTO'yu doğrular; geçerliyse boş string, değilse ilk hatanın
// kullanıcıya dönecek mesajını döndürür.
func FirstError(s interface{}) string {
	err := validate.Struct(s)
	if err == nil {
		return ""
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return "Geçersiz istek gövdesi."
	}
	return message(verrs[0])
}

// message tek bir alan hatasını Türkçe mesaja çevirir.
func message(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field()[:1]) + fe.Field()[1:]
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s alanı zorunludur.", field)
	case "email":
		return fmt.Sprintf("%s geçerli bir e-posta adresi olmalıdır.", field)
	case "url":
		return fmt.Sprintf("%s geçerli bir URL olmalıdır.", field)
	case "min":
		return fmt.Sprintf("%s en az %s karakter olmalıdır.", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s en fazla %s karakter olabilir.", field, fe.Param())
	case "slug":
		return fmt.Sprintf("%s yalnızca küçük harf, rakam ve tire içerebilir (3-20 karakter).", field)
	case "oneof":
		return fmt.Sprintf("%s şu değerlerden biri olmalıdır: %s.", field, fe.Param())
	default:
		return fmt.Sprintf("%s alanı geçersiz.", field)
	}
}
