// Package i18n translates messages and validation errors.
package i18n

import (
	"embed"
	"errors"
	"reflect"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/locales/de"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	de_translations "github.com/go-playground/validator/v10/translations/de"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	pkgerrors "github.com/pkg/errors"
)

//go:embed translations/*.toml
var catalogFS embed.FS

// ErrUnsupportedLocale is returned for locales without catalog.
var ErrUnsupportedLocale = errors.New("unsupported locale")

// Translator resolves message keys. Params are replaced literally, e.g. "%role%".
type Translator interface {
	Trans(key string, params map[string]string) string
}

// Catalog is the Translator of one locale. It also owns the validator, so
// validation messages come out in the same language.
type Catalog struct {
	locale   string
	messages map[string]string
	validate *validator.Validate
	trans    ut.Translator
}

// Locales lists the supported locales.
func Locales() []string {
	return []string{"de", "en"}
}

// New loads the embedded catalog of locale.
func New(locale string) (*Catalog, error) {
	raw, err := catalogFS.ReadFile("translations/messages." + locale + ".toml")
	if err != nil {
		return nil, pkgerrors.Wrapf(ErrUnsupportedLocale, "%q", locale)
	}

	messages := make(map[string]string)
	if _, err := toml.Decode(string(raw), &messages); err != nil {
		return nil, pkgerrors.Wrapf(err, "decode catalog %q", locale)
	}

	c := &Catalog{
		locale:   locale,
		messages: messages,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}

	// errors are keyed by the form field name
	c.validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("form"), ",")
		if name == "-" || name == "" {
			return fld.Name
		}

		return name
	})

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale, de.New())

	c.trans, _ = uni.GetTranslator(locale)

	switch locale {
	case "de":
		err = de_translations.RegisterDefaultTranslations(c.validate, c.trans)
	default:
		err = en_translations.RegisterDefaultTranslations(c.validate, c.trans)
	}

	if err != nil {
		return nil, pkgerrors.Wrap(err, "register validation translations")
	}

	return c, nil
}

// Locale of the catalog.
func (c *Catalog) Locale() string {
	return c.locale
}

// Trans returns the message of key. Unknown keys are returned as they are,
// both with params replaced.
func (c *Catalog) Trans(key string, params map[string]string) string {
	msg, ok := c.messages[key]
	if !ok {
		msg = key
	}

	if len(params) == 0 {
		return msg
	}

	// sorted for a deterministic replacement order
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}

	sort.Strings(names)

	pairs := make([]string, 0, 2*len(params)) //nolint:mnd
	for _, name := range names {
		pairs = append(pairs, name, params[name])
	}

	return strings.NewReplacer(pairs...).Replace(msg)
}

// T is Trans without params, used by templates.
func (c *Catalog) T(key string) string {
	return c.Trans(key, nil)
}

// Validator returns the validator whose messages this catalog translates.
func (c *Catalog) Validator() *validator.Validate {
	return c.validate
}

// TranslateValidation maps each failing field to its translated message.
// It returns nil for errors that are not validation errors.
func (c *Catalog) TranslateValidation(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}

	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		if _, seen := out[fe.Field()]; !seen {
			out[fe.Field()] = fe.Translate(c.trans)
		}
	}

	return out
}
