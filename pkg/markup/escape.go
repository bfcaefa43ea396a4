package markup

import "strings"

var textEntities = []string{
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
}

var (
	textEscaper = strings.NewReplacer(textEntities...)

	// Attribute values additionally encode whitespace that would otherwise be
	// normalized by the parser.
	attrEscaper = strings.NewReplacer(append(append([]string(nil), textEntities...),
		"\n", "&#10;",
		"\r", "&#13;",
		"\t", "&#9;",
	)...)
)

// EscapeText escapes s for HTML content. WrapTag and OptionTag never call it.
func EscapeText(s string) string {
	return textEscaper.Replace(s)
}

// EscapeAttr escapes s for use inside a double-quoted attribute value.
func EscapeAttr(s string) string {
	return attrEscaper.Replace(s)
}
