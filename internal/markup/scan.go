package markup

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"golang.org/x/net/html"

	"control-resolver/internal/common"
)

// Attribute is a single element attribute. Names are lower-cased by the tokenizer.
type Attribute struct {
	Name  string
	Value string
}

// Tag is one start or self-closing element tag.
type Tag struct {
	Prefix     string
	Name       string
	Line       int
	SelfClose  bool
	Attributes []Attribute
}

// String returns "prefix:name", or "name" for plain HTML tags.
func (t Tag) String() string {
	return common.JoinTag(t.Prefix, t.Name)
}

// Attr returns the value of the named attribute.
func (t Tag) Attr(name string) (string, bool) {
	for _, a := range t.Attributes {
		if a.Name == name {
			return a.Value, true
		}
	}

	return "", false
}

// Scan returns every element tag in r in document order.
func Scan(r io.Reader) ([]Tag, error) {
	z := html.NewTokenizer(r)
	line := 1

	var tags []Tag

	for {
		tt := z.Next()
		raw := z.Raw()
		start := line
		line += bytes.Count(raw, []byte{'\n'})

		switch tt {
		case html.ErrorToken:
			if err := z.Err(); !errors.Is(err, io.EOF) {
				return tags, fmt.Errorf("failed to tokenize markup at line %d: %w", start, err)
			}

			return tags, nil
		case html.StartTagToken, html.SelfClosingTagToken:
			// TagName lower-cases the token buffer in place, so read the raw name first
			prefix, name := common.SplitTag(rawTagName(raw))
			tag := Tag{
				Prefix:    prefix,
				Name:      name,
				Line:      start,
				SelfClose: tt == html.SelfClosingTagToken,
			}

			_, hasAttr := z.TagName()
			for hasAttr {
				var key, val []byte
				key, val, hasAttr = z.TagAttr()
				tag.Attributes = append(tag.Attributes, Attribute{Name: string(key), Value: string(val)})
			}

			tags = append(tags, tag)
		}
	}
}

// rawTagName extracts the element name from raw token text such as
// "<cc:Button text=x>".
func rawTagName(raw []byte) string {
	raw = bytes.TrimPrefix(raw, []byte{'<'})

	end := bytes.IndexAny(raw, " \t\r\n\f/>")
	if end < 0 {
		end = len(raw)
	}

	return string(raw[:end])
}
