package service

import (
	"regexp"
	"strings"

	"github.com/mozillazg/go-unidecode"
)

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify строит URL-безопасный slug из заголовка, когда клиент его не
// прислал: транслитерация, нижний регистр, дефисы вместо прочего
func Slugify(title string) string {
	s := unidecode.Unidecode(title)
	s = strings.ToLower(s)
	s = slugStrip.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
