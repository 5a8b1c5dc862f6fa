package synth

import "sort"

// supportedLanguages mirrors the language table accepted by the translate
// speech endpoint, keyed by IETF language code.
var supportedLanguages = map[string]string{
	"af":    "Afrikaans",
	"ar":    "Arabic",
	"bg":    "Bulgarian",
	"bn":    "Bengali",
	"bs":    "Bosnian",
	"ca":    "Catalan",
	"cs":    "Czech",
	"cy":    "Welsh",
	"da":    "Danish",
	"de":    "German",
	"el":    "Greek",
	"en":    "English",
	"eo":    "Esperanto",
	"es":    "Spanish",
	"et":    "Estonian",
	"fi":    "Finnish",
	"fr":    "French",
	"gu":    "Gujarati",
	"hi":    "Hindi",
	"hr":    "Croatian",
	"hu":    "Hungarian",
	"hy":    "Armenian",
	"id":    "Indonesian",
	"is":    "Icelandic",
	"it":    "Italian",
	"iw":    "Hebrew",
	"ja":    "Japanese",
	"jw":    "Javanese",
	"km":    "Khmer",
	"kn":    "Kannada",
	"ko":    "Korean",
	"la":    "Latin",
	"lv":    "Latvian",
	"mk":    "Macedonian",
	"ml":    "Malayalam",
	"mr":    "Marathi",
	"ms":    "Malay",
	"my":    "Myanmar (Burmese)",
	"ne":    "Nepali",
	"nl":    "Dutch",
	"no":    "Norwegian",
	"pl":    "Polish",
	"pt":    "Portuguese",
	"ro":    "Romanian",
	"ru":    "Russian",
	"si":    "Sinhala",
	"sk":    "Slovak",
	"sq":    "Albanian",
	"sr":    "Serbian",
	"su":    "Sundanese",
	"sv":    "Swedish",
	"sw":    "Swahili",
	"ta":    "Tamil",
	"te":    "Telugu",
	"th":    "Thai",
	"tl":    "Filipino",
	"tr":    "Turkish",
	"uk":    "Ukrainian",
	"ur":    "Urdu",
	"vi":    "Vietnamese",
	"zh-CN": "Chinese (Mandarin/China)",
	"zh-TW": "Chinese (Mandarin/Taiwan)",
}

// supportedAccents lists the translate host top-level domains that select a
// localized accent for languages spoken in more than one region.
var supportedAccents = map[string]struct{}{
	"com":    {},
	"ad":     {},
	"at":     {},
	"be":     {},
	"bg":     {},
	"ca":     {},
	"ch":     {},
	"cl":     {},
	"cz":     {},
	"de":     {},
	"dk":     {},
	"es":     {},
	"fi":     {},
	"fr":     {},
	"gr":     {},
	"hu":     {},
	"ie":     {},
	"it":     {},
	"nl":     {},
	"no":     {},
	"pl":     {},
	"pt":     {},
	"ro":     {},
	"ru":     {},
	"se":     {},
	"us":     {},
	"co.id":  {},
	"co.il":  {},
	"co.in":  {},
	"co.jp":  {},
	"co.kr":  {},
	"co.nz":  {},
	"co.th":  {},
	"co.uk":  {},
	"co.za":  {},
	"com.ar": {},
	"com.au": {},
	"com.br": {},
	"com.hk": {},
	"com.mx": {},
	"com.my": {},
	"com.ng": {},
	"com.sg": {},
	"com.tw": {},
	"com.ua": {},
	"com.vn": {},
}

// IsSupportedLanguage reports whether code is a language the speech service
// accepts. Codes are case-sensitive, matching the service.
func IsSupportedLanguage(code string) bool {
	_, ok := supportedLanguages[code]

	return ok
}

// IsSupportedAccent reports whether tld selects a known localized accent.
func IsSupportedAccent(tld string) bool {
	_, ok := supportedAccents[tld]

	return ok
}

// Languages returns the supported language codes in sorted order, for help
// text and validation messages.
func Languages() []string {
	codes := make([]string, 0, len(supportedLanguages))
	for code := range supportedLanguages {
		codes = append(codes, code)
	}

	sort.Strings(codes)

	return codes
}
