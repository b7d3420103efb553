package syntax

// Style captures output conventions detected from a document.
type Style struct {
	Typed      bool
	Semicolons bool
	Quote      byte
}

var terminated = map[string]bool{
	"expression_statement": true,
	"return_statement":     true,
	"throw_statement":      true,
	"lexical_declaration":  true,
	"variable_declaration": true,
	"import_statement":     true,
}

// Style returns the conventions of the current text.
func (d *Document) Style() Style {
	if d.style != nil {
		return *d.style
	}
	style := Style{Typed: d.dialect.Typed(), Semicolons: true, Quote: '\''}
	var withSemicolon, without, single, double int
	for _, node := range d.Root().Descendants() {
		switch {
		case terminated[node.typ]:
			if d.src[node.end-1] == ';' {
				withSemicolon++
			} else {
				without++
			}
		case node.typ == "string":
			switch d.src[node.start] {
			case '\'':
				single++
			case '"':
				double++
			}
		}
	}
	if without > withSemicolon {
		style.Semicolons = false
	}
	if double > single {
		style.Quote = '"'
	}
	d.style = &style
	return style
}
