package i18n

import "golang.org/x/text/language"

// Translator retrieves localized messages for Diagnostic codes.
// data provides optional metadata to embed in the message (for example,
// "expected" or "keyword").
type Translator interface {
	Message(code string, data map[string]string) string
}

var supported = []language.Tag{language.English, language.Japanese}

var matcher = language.NewMatcher(supported)

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang language.Tag }

func (t dictTranslator) Message(code string, data map[string]string) string {
	if t.lang == language.Japanese {
		switch code {
		case "missing_field":
			return "必須カラムがありません"
		case "wrong_type":
			return "要素の型が不正です"
		case "wrong_unit":
			return "単位に互換性がありません"
		case "missing_unit":
			return "単位がありません"
		case "wrong_shape":
			return "形状が不正です"
		case "wrong_value":
			return "許可されていない値です"
		case "unexpected_null":
			return "null は許可されていません"
		case "missing_header_card":
			return "必須ヘッダカードがありません"
		case "invalid_header_value":
			return "許可されていないヘッダ値です"
		case "wrong_position":
			return "ヘッダカードの位置が不正です"
		case "unknown_field":
			return "未知の名前です"
		}
		return code
	}
	switch code {
	case "missing_field":
		return "required column missing"
	case "wrong_type":
		return "wrong element type"
	case "wrong_unit":
		return "incompatible unit"
	case "missing_unit":
		return "unit missing"
	case "wrong_shape":
		return "wrong shape"
	case "wrong_value":
		return "value not allowed"
	case "unexpected_null":
		return "null not allowed"
	case "missing_header_card":
		return "required header card missing"
	case "invalid_header_value":
		return "header value not allowed"
	case "wrong_position":
		return "header card out of position"
	case "unknown_field":
		return "unknown name"
	}
	return code
}

var currentTranslator Translator = dictTranslator{lang: language.English}

// SetLanguage switches the built-in Translator to the supported language
// closest to the given BCP 47 tag ("ja-JP" selects the Japanese catalog,
// anything unmatched falls back to English).
func SetLanguage(lang string) {
	_, idx := language.MatchStrings(matcher, lang)
	currentTranslator = dictTranslator{lang: supported[idx]}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: language.English}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
