package markup

import (
	"fmt"
	"strings"
)

// Attr is an optional attribute for WrapTag.
type Attr func(*attrs)

type attrs struct {
	class string
	id    string
}

// Class sets the class attribute. An empty value omits the attribute.
func Class(class string) Attr {
	return func(a *attrs) {
		a.class = class
	}
}

// ID sets the id attribute. An empty value omits the attribute.
func ID(id string) Attr {
	return func(a *attrs) {
		a.id = id
	}
}

// WrapTag wraps text in a tag element. The class attribute, when set, always
// precedes the id attribute.
func WrapTag(tag, text string, opts ...Attr) string {
	var a attrs
	for _, opt := range opts {
		opt(&a)
	}

	var b strings.Builder
	b.Grow(2*len(tag) + len(text) + len(a.class) + len(a.id) + 24)

	b.WriteByte('<')
	b.WriteString(tag)
	if a.class != "" {
		b.WriteString(` class="`)
		b.WriteString(a.class)
		b.WriteByte('"')
	}
	if a.id != "" {
		b.WriteString(` id="`)
		b.WriteString(a.id)
		b.WriteByte('"')
	}
	b.WriteByte('>')
	b.WriteString(text)
	b.WriteString("</")
	b.WriteString(tag)
	b.WriteByte('>')
	return b.String()
}

// OptionTag renders a single option element terminated by a newline. The
// selected attribute is present only when value == selected.
func OptionTag[T comparable](text string, value, selected T) string {
	var b strings.Builder
	b.WriteString("<option ")
	if value == selected {
		b.WriteString("selected ")
	}
	b.WriteString(`value="`)
	b.WriteString(fmt.Sprint(value))
	b.WriteString(`">`)
	b.WriteString(text)
	b.WriteString("</option>\n")
	return b.String()
}

// Option is one entry of a select list.
type Option[T comparable] struct {
	Text  string
	Value T
}

// OptionTags renders items in order, marking the ones equal to selected.
func OptionTags[T comparable](items []Option[T], selected T) string {
	var b strings.Builder
	for _, item := range items {
		b.WriteString(OptionTag(item.Text, item.Value, selected))
	}
	return b.String()
}
