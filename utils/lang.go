package utils

import (
	"path"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/spf13/viper"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v2"

	"github.com/fusex/medevac-api/schema"
)

// DefaultLanguage is used when a caller does not ask for one.
const DefaultLanguage = "pt-BR"

var bundle *i18n.Bundle

func InitI18NBundle() {
	bundle = i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)
	bundle.MustLoadMessageFile(path.Join(viper.GetString("i18n.dir"), "en.yaml"))
	bundle.MustLoadMessageFile(path.Join(viper.GetString("i18n.dir"), "pt_br.yaml"))
}

func NewLocalizer(lang string) *i18n.Localizer {
	return i18n.NewLocalizer(bundle, lang)
}

// RoleLabel is the display name of a role. Roles without a translation, or
// any role before the bundle is loaded, are spelled with spaces.
func RoleLabel(lang string, role schema.Role) string {
	return label(lang, "roles."+string(role), string(role))
}

// StatusLabel is the display name of a request or response status.
func StatusLabel(lang string, status schema.Status) string {
	return label(lang, "statuses."+string(status), string(status))
}

// RoleLabeler binds RoleLabel to one language.
func RoleLabeler(lang string) func(schema.Role) string {
	return func(role schema.Role) string {
		return RoleLabel(lang, role)
	}
}

func label(lang, messageID, fallback string) string {
	plain := strings.ReplaceAll(fallback, "_", " ")
	if bundle == nil {
		return plain
	}

	s, err := NewLocalizer(lang).Localize(&i18n.LocalizeConfig{
		MessageID: messageID,
	})
	if err != nil {
		return plain
	}
	return s
}
