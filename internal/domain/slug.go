package domain

import (
	"strings"
	"unicode"
)

// Slug строит handle из названия товара: нижний регистр, каждая серия пробельных
// символов заменяется одним дефисом, затем удаляется всё, кроме a-z, 0-9 и дефиса.
// Пробелы по краям отбрасываются, поэтому строка из одних пробелов даёт "".
// Пустой результат не считается ошибкой.
func Slug(title string) string {
	var (
		b       strings.Builder
		inSpace bool
	)

	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		if unicode.IsSpace(r) {
			if !inSpace {
				b.WriteByte('-')
				inSpace = true
			}
			continue
		}
		inSpace = false

		if ('a' <= r && r <= 'z') || ('0' <= r && r <= '9') || r == '-' {
			b.WriteRune(r)
		}
	}

	return b.String()
}
