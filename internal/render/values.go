package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/jlcat/internal/entry"
)

const (
	indentSize   = 2
	extrasIndent = 2 // levels, i.e. four spaces
	maxWidth     = 80
)

// valuePrinter writes JSON values in a compact, key-unquoted form. Arrays of
// scalars stay on one line, as do short objects of scalars; anything else is
// spread over indented lines.
type valuePrinter struct {
	paint  func(style lipgloss.Style, text string) string
	styles Styles
}

// extras renders entry extras. It returns one line when every value is
// compact, otherwise one line per member.
func (p *valuePrinter) extras(members []entry.Member) []string {
	if len(members) == 0 {
		return nil
	}

	pad := strings.Repeat(" ", extrasIndent*indentSize)
	if p.allCompact(members) {
		var b strings.Builder
		b.WriteString(pad)
		for i, m := range members {
			if i > 0 {
				b.WriteString(p.punct(", "))
			}
			p.writeMember(&b, m, extrasIndent)
		}
		return []string{b.String()}
	}

	lines := make([]string, 0, len(members))
	for i, m := range members {
		var b strings.Builder
		b.WriteString(pad)
		p.writeMember(&b, m, extrasIndent)
		if i < len(members)-1 {
			b.WriteString(p.punct(","))
		}
		lines = append(lines, strings.Split(b.String(), "\n")...)
	}
	return lines
}

func (p *valuePrinter) allCompact(members []entry.Member) bool {
	for _, m := range members {
		if !p.compact(m.Value) {
			return false
		}
	}
	return true
}

func (p *valuePrinter) compact(v entry.Value) bool {
	switch v.Type {
	case entry.TypeArray:
		return compactArray(v.Items)
	case entry.TypeObject:
		return compactObject(v.Members)
	default:
		return true
	}
}

func (p *valuePrinter) writeMember(b *strings.Builder, m entry.Member, indent int) {
	b.WriteString(p.paint(p.styles.Key, escapeControl(m.Key)))
	b.WriteString(p.punct(":"))
	b.WriteByte(' ')
	p.writeValue(b, m.Value, indent)
}

func (p *valuePrinter) writeValue(b *strings.Builder, v entry.Value, indent int) {
	switch v.Type {
	case entry.TypeNull:
		b.WriteString(p.paint(p.styles.Null, "null"))
	case entry.TypeBool:
		b.WriteString(p.paint(p.styles.Bool, strconv.FormatBool(v.Bool)))
	case entry.TypeNumber:
		b.WriteString(p.paint(p.styles.Number, v.Number.String()))
	case entry.TypeString:
		b.WriteString(p.paint(p.styles.String, quote(v.Str)))
	case entry.TypeArray:
		p.writeArray(b, v.Items, indent)
	case entry.TypeObject:
		p.writeObject(b, v.Members, indent)
	default:
		// Not reachable from parsed input; keep whatever the value holds.
		raw, err := json.Marshal(v)
		if err != nil {
			fmt.Fprintf(b, "%v", v)
			return
		}
		b.Write(raw)
	}
}

func (p *valuePrinter) writeArray(b *strings.Builder, items []entry.Value, indent int) {
	b.WriteString(p.punct("["))
	if compactArray(items) {
		for i, item := range items {
			if i > 0 {
				b.WriteString(p.punct(", "))
			}
			p.writeValue(b, item, indent)
		}
		b.WriteString(p.punct("]"))
		return
	}

	for i, item := range items {
		b.WriteByte('\n')
		writeIndent(b, indent+1)
		p.writeValue(b, item, indent+1)
		if i < len(items)-1 {
			b.WriteString(p.punct(","))
		}
	}
	b.WriteByte('\n')
	writeIndent(b, indent)
	b.WriteString(p.punct("]"))
}

func (p *valuePrinter) writeObject(b *strings.Builder, members []entry.Member, indent int) {
	b.WriteString(p.punct("{"))
	if compactObject(members) {
		for i, m := range members {
			if i > 0 {
				b.WriteString(p.punct(", "))
			}
			p.writeMember(b, m, indent)
		}
		b.WriteString(p.punct("}"))
		return
	}

	for i, m := range members {
		b.WriteByte('\n')
		writeIndent(b, indent+1)
		p.writeMember(b, m, indent+1)
		if i < len(members)-1 {
			b.WriteString(p.punct(","))
		}
	}
	b.WriteByte('\n')
	writeIndent(b, indent)
	b.WriteString(p.punct("}"))
}

func (p *valuePrinter) punct(s string) string {
	return p.paint(p.styles.Punctuation, s)
}

func compactArray(items []entry.Value) bool {
	for _, item := range items {
		if !item.Scalar() {
			return false
		}
	}
	return true
}

func compactObject(members []entry.Member) bool {
	width := 0
	for _, m := range members {
		if !m.Value.Scalar() {
			return false
		}
		// key, colon, space, separator
		width += len(m.Key) + estimateWidth(m.Value) + 4
	}
	return width < maxWidth
}

func estimateWidth(v entry.Value) int {
	switch v.Type {
	case entry.TypeNull:
		return 4
	case entry.TypeBool:
		if v.Bool {
			return 4
		}
		return 5
	case entry.TypeNumber:
		return len(v.Number)
	case entry.TypeString:
		return len(v.Str) + 2
	default:
		return maxWidth
	}
}

func writeIndent(b *strings.Builder, level int) {
	b.WriteString(strings.Repeat(" ", level*indentSize))
}

// quote renders s as a JSON string literal without HTML escaping. DEL and
// C1 controls, which the encoder passes through, are escaped as well.
func quote(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return fmt.Sprintf("%q", s)
	}
	return escapeControl(strings.TrimSuffix(buf.String(), "\n"))
}
