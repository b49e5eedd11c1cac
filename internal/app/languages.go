package app

import (
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"go.aimuz.me/sayclip/internal/types"
)

// languageCodes are the transcription hint choices offered in settings.
// Whisper auto-detects when no hint is given.
var languageCodes = []string{
	"en", "zh", "ja", "ko", "es", "fr", "de", "it", "pt", "ru",
	"ar", "hi", "nl", "pl", "tr", "vi", "th", "id", "uk", "sv",
}

// GetLanguages returns the selectable language hints, auto-detect first.
func (s *Service) GetLanguages() []types.LanguageOption {
	options := make([]types.LanguageOption, 0, len(languageCodes)+1)
	options = append(options, types.LanguageOption{
		Code:       "auto",
		Name:       "Auto Detect",
		NativeName: "Auto Detect",
	})

	english := display.English.Languages()
	for _, code := range languageCodes {
		tag := language.Make(code)
		options = append(options, types.LanguageOption{
			Code:       code,
			Name:       english.Name(tag),
			NativeName: display.Self.Name(tag),
		})
	}
	return options
}
