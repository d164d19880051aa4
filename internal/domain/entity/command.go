package entity

import "strings"

// CommandKind — вариант команды, выбранный классификатором.
type CommandKind string

const (
	CommandPlainText      CommandKind = "plain_text"      // текст без фото, эхо-ответ
	CommandNoCaption      CommandKind = "no_caption"      // фото без подписи в режиме фильтров
	CommandUnknownCaption CommandKind = "unknown_caption" // подпись не из списка фильтров
	CommandFilter         CommandKind = "filter"          // применить именованный фильтр
	CommandDetect         CommandKind = "detect"          // отправить фото на детекцию
)

// Command — результат классификации входящего сообщения.
// Ровно один вариант на сообщение.
type Command struct {
	Kind    CommandKind
	Text    string     // для CommandPlainText
	Caption string     // для CommandUnknownCaption
	Filter  FilterKind // для CommandFilter
}

// FilterKind — имя преобразования изображения из фиксированного набора.
type FilterKind string

const (
	FilterBlur       FilterKind = "blur"
	FilterContour    FilterKind = "contour"
	FilterRotate     FilterKind = "rotate"
	FilterSegment    FilterKind = "segment"
	FilterSaltPepper FilterKind = "salt and pepper"
	FilterConcat     FilterKind = "concat"
	FilterRotate2    FilterKind = "rotate 2"
)

// ParseFilterKind сопоставляет подпись к фото с фильтром.
// Регистр и пробелы по краям не учитываются.
func ParseFilterKind(caption string) (FilterKind, bool) {
	switch FilterKind(strings.ToLower(strings.TrimSpace(caption))) {
	case FilterBlur:
		return FilterBlur, true
	case FilterContour:
		return FilterContour, true
	case FilterRotate:
		return FilterRotate, true
	case FilterSegment:
		return FilterSegment, true
	case FilterSaltPepper:
		return FilterSaltPepper, true
	case FilterConcat:
		return FilterConcat, true
	case FilterRotate2:
		return FilterRotate2, true
	}
	return "", false
}
