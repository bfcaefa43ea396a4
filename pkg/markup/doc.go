// Package markup builds small HTML fragments as strings.
//
// The builders are direct passthroughs: tag names, text and attribute values
// are written exactly as given. Callers rendering untrusted input must pass it
// through EscapeText or EscapeAttr first.
//
//	markup.WrapTag("div", "hi")                      // <div>hi</div>
//	markup.WrapTag("div", "hi", markup.Class("c"))   // <div class="c">hi</div>
//	markup.OptionTag("Yes", "1", "1")                // <option selected value="1">Yes</option>\n
package markup
