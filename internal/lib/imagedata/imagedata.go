// Package imagedata разбирает изображения, пришедшие строкой base64
// с необязательным заголовком data:<mime>;base64,
package imagedata

import (
	"encoding/base64"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

const DefaultContentType = "image/jpeg"

var (
	ErrEmpty   = errors.New("empty image payload")
	ErrPayload = errors.New("malformed base64 payload")
)

var (
	dataURIPrefix = regexp.MustCompile(`(?i)^data:(image/[a-z0-9.+-]+);base64,`)
	safeExtension = regexp.MustCompile(`^[a-z0-9]+$`)
)

var extensions = map[string]string{
	"image/jpeg":    "jpg",
	"image/jpg":     "jpg",
	"image/png":     "png",
	"image/gif":     "gif",
	"image/webp":    "webp",
	"image/svg+xml": "svg",
}

type Payload struct {
	Data        []byte
	ContentType string
	Ext         string
}

func (p Payload) Size() int64 {
	return int64(len(p.Data))
}

// Decode снимает заголовок data-URI и декодирует base64
func Decode(raw string) (Payload, error) {
	contentType, body := Split(raw)

	if body == "" {
		return Payload{}, ErrEmpty
	}

	data, err := decodeBase64(body)
	if err != nil {
		return Payload{}, fmt.Errorf("%w: %v", ErrPayload, err)
	}
	if len(data) == 0 {
		return Payload{}, ErrEmpty
	}

	return Payload{
		Data:        data,
		ContentType: contentType,
		Ext:         Extension(contentType),
	}, nil
}

// Split отделяет MIME из заголовка от тела; без заголовка MIME = image/jpeg
func Split(raw string) (string, string) {
	raw = strings.TrimSpace(raw)

	if m := dataURIPrefix.FindStringSubmatch(raw); m != nil {
		return strings.ToLower(m[1]), raw[len(m[0]):]
	}

	return DefaultContentType, raw
}

// Extension расширение файла для MIME. Подтип идет в путь объекта,
// поэтому допускаются только [a-z0-9]+, иначе jpg.
func Extension(contentType string) string {
	contentType = strings.ToLower(contentType)

	if ext, ok := extensions[contentType]; ok {
		return ext
	}

	if _, sub, ok := strings.Cut(contentType, "/"); ok && safeExtension.MatchString(sub) {
		return sub
	}

	return "jpg"
}

func decodeBase64(s string) ([]byte, error) {
	s = strings.Map(func(r rune) rune {
		switch r {
		case '\n', '\r', ' ', '\t':
			return -1
		}
		return r
	}, s)

	if strings.HasSuffix(s, "=") || len(s)%4 == 0 {
		return base64.StdEncoding.DecodeString(s)
	}

	return base64.RawStdEncoding.DecodeString(s)
}
