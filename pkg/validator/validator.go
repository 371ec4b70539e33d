package validator

import (
	"log"
	"reflect"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

func RegisterGinValidator() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		err := v.RegisterValidation("nin", ninValidator)
		if err != nil {
			log.Fatal("register nin validator failed")
		}
	}
}

var ninValidator validator.Func = func(fl validator.FieldLevel) bool {
	nin := fl.Field().String()
	pattern := `^SO-\d{4}-\d{6}$`
	matched, err := regexp.MatchString(pattern, nin)
	if err != nil {
		return false
	}
	return matched
}
