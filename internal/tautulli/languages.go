package tautulli

import "strings"

// UnknownLanguage is shown for tracks without a language code.
const UnknownLanguage = "Desconhecido"

// LanguageNames maps ISO 639-1/639-2 codes to display names.
var LanguageNames = map[string]string{
	"por": "Português",
	"pt":  "Português",
	"pob": "Português (BR)",
	"eng": "Inglês",
	"en":  "Inglês",
	"spa": "Espanhol",
	"es":  "Espanhol",
	"fra": "Francês",
	"fre": "Francês",
	"fr":  "Francês",
	"deu": "Alemão",
	"ger": "Alemão",
	"de":  "Alemão",
	"ita": "Italiano",
	"it":  "Italiano",
	"jpn": "Japonês",
	"ja":  "Japonês",
	"kor": "Coreano",
	"ko":  "Coreano",
	"zho": "Chinês",
	"chi": "Chinês",
	"zh":  "Chinês",
	"rus": "Russo",
	"ru":  "Russo",
	"ara": "Árabe",
	"ar":  "Árabe",
	"hin": "Hindi",
	"hi":  "Hindi",
	"nld": "Holandês",
	"dut": "Holandês",
	"nl":  "Holandês",
	"pol": "Polonês",
	"pl":  "Polonês",
	"tur": "Turco",
	"tr":  "Turco",
	"swe": "Sueco",
	"sv":  "Sueco",
	"nor": "Norueguês",
	"no":  "Norueguês",
	"dan": "Dinamarquês",
	"da":  "Dinamarquês",
	"fin": "Finlandês",
	"fi":  "Finlandês",
	"tha": "Tailandês",
	"th":  "Tailandês",
	"heb": "Hebraico",
	"he":  "Hebraico",
	"und": "Indefinido",
}

// LanguageName maps a language code through LanguageNames, falling back to
// the uppercased code.
func LanguageName(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return UnknownLanguage
	}
	if name, ok := LanguageNames[strings.ToLower(code)]; ok {
		return name
	}
	return strings.ToUpper(code)
}

// ChannelLayout normalizes a channel layout: "5.1(side)" becomes "5.1" and
// "stereo" becomes "2.0".
func ChannelLayout(layout string) string {
	if i := strings.Index(layout, "("); i >= 0 {
		layout = layout[:i]
	}
	layout = strings.TrimSpace(layout)
	if strings.EqualFold(layout, "stereo") {
		return "2.0"
	}
	return layout
}
