package webutil

import (
	"log"
	"reflect"
	"strings"

	"github.com/go-playground/locales/pt_BR"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	ptBRTranslations "github.com/go-playground/validator/v10/translations/pt_BR"
)

// Validator はアプリケーション全体で共有されるバリデータインスタンスです。
var Validator *validator.Validate

// Trans はエラーメッセージを翻訳するためのトランスレータです (pt-BR)。
var Trans ut.Translator

// jsonタグ名 → 画面表示名
var fieldNameTranslations = map[string]string{
	"email":            "e-mail",
	"password":         "senha",
	"organization_id":  "organização",
	"name":             "nome",
	"plan_type":        "plano",
	"word":             "palavra",
	"translation":      "tradução",
	"definition":       "definição",
	"audio_url":        "URL do áudio",
	"token":            "token",
	"total_aprendidas": "total aprendidas",
	"total_revisadas":  "total revisadas",
	"duracao_segundos": "duração",
}

func init() {
	Validator = validator.New()

	// JSONタグからフィールド名を取得するように設定
	Validator.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	locale := pt_BR.New()
	uni := ut.New(locale, locale)
	var found bool
	Trans, found = uni.GetTranslator("pt_BR")
	if !found {
		log.Fatal("translator not found")
	}
	if err := ptBRTranslations.RegisterDefaultTranslations(Validator, Trans); err != nil {
		log.Fatal(err)
	}

	// よく使うタグはフィールドの表示名を使ったメッセージに上書き
	registerTranslation("required", "{0} é obrigatório.", false)
	registerTranslation("email", "{0} deve ser um endereço de e-mail válido.", false)
	registerTranslation("url", "{0} deve ser uma URL válida.", false)
	registerTranslation("min", "{0} deve ter no mínimo {1} caracteres.", true)
	registerTranslation("max", "{0} deve ter no máximo {1} caracteres.", true)
}

func registerTranslation(tag, msg string, withParam bool) {
	Validator.RegisterTranslation(tag, Trans, func(ut ut.Translator) error {
		return ut.Add(tag, msg, true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		fieldName, ok := fieldNameTranslations[fe.Field()]
		if !ok {
			fieldName = fe.Field()
		}
		var t string
		if withParam {
			t, _ = ut.T(tag, fieldName, fe.Param())
		} else {
			t, _ = ut.T(tag, fieldName)
		}
		return t
	})
}
