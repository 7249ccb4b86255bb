package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/jlcat/internal/severity"
)

// Theme defines the colours used for rendered output. Empty colours mean the
// terminal default.
type Theme struct {
	Name string

	// Severity colours
	Trace string
	Debug string
	Info  string
	Warn  string
	Error string
	Fatal string

	// Chrome
	Accent string // session separators
	Danger string // diagnostics
	Muted  string // notices

	// Extras values
	Key         string
	String      string
	Number      string
	Bool        string
	Null        string
	Punctuation string
}

// Styles returns lipgloss styles for this theme bound to r.
func (t Theme) Styles(r *lipgloss.Renderer) Styles {
	fg := func(color string) lipgloss.Style {
		s := r.NewStyle().TabWidth(lipgloss.NoTabConversion)
		if color != "" {
			s = s.Foreground(lipgloss.Color(color))
		}
		return s
	}

	return Styles{
		levels: map[severity.Level]lipgloss.Style{
			severity.Trace: fg(t.Trace).Faint(true),
			severity.Debug: fg(t.Debug),
			severity.Info:  fg(t.Info),
			severity.Warn:  fg(t.Warn),
			severity.Error: fg(t.Error),
			severity.Fatal: fg(t.Fatal).Bold(true),
		},
		plain: fg(""),

		Session:    fg(t.Accent).Bold(true),
		Diagnostic: fg(t.Danger),
		Notice:     fg(t.Muted).Faint(true),

		Key:         fg(t.Key),
		String:      fg(t.String),
		Number:      fg(t.Number),
		Bool:        fg(t.Bool),
		Null:        fg(t.Null),
		Punctuation: fg(t.Punctuation),
	}
}

// Styles contains pre-built lipgloss styles for a theme.
type Styles struct {
	levels map[severity.Level]lipgloss.Style
	plain  lipgloss.Style

	Session    lipgloss.Style
	Diagnostic lipgloss.Style
	Notice     lipgloss.Style

	Key         lipgloss.Style
	String      lipgloss.Style
	Number      lipgloss.Style
	Bool        lipgloss.Style
	Null        lipgloss.Style
	Punctuation lipgloss.Style
}

// Level returns the style for a severity. Unknown levels are left unstyled.
func (s Styles) Level(l severity.Level) lipgloss.Style {
	if style, ok := s.levels[l]; ok {
		return style
	}
	return s.plain
}

// Theme definitions

const DefaultThemeName = "Default"

var themes = map[string]Theme{
	"default":  defaultTheme(),
	"nightfox": nightfoxTheme(),
	"slate":    slateTheme(),
}

var themeOrder = []string{"Default", "Nightfox", "Slate"}

// GetTheme returns a theme by name, ignoring case. Unknown names fall back to
// the default theme; ok reports whether name was found.
func GetTheme(name string) (Theme, bool) {
	if t, ok := themes[strings.ToLower(strings.TrimSpace(name))]; ok {
		return t, true
	}
	return defaultTheme(), false
}

// ThemeNames returns available theme names.
func ThemeNames() []string {
	return themeOrder
}

func defaultTheme() Theme {
	// Plain ANSI colours so output follows the terminal's own palette.
	return Theme{
		Name: "Default",

		Trace: "",
		Debug: "4",
		Info:  "2",
		Warn:  "3",
		Error: "1",
		Fatal: "9",

		Accent: "5",
		Danger: "1",
		Muted:  "8",

		Key:         "33",
		String:      "2",
		Number:      "11",
		Bool:        "9",
		Null:        "8",
		Punctuation: "7",
	}
}

func nightfoxTheme() Theme {
	// Nightfox palette: https://github.com/EdenEast/nightfox.nvim
	return Theme{
		Name: "Nightfox",

		Trace: "#71839b", // fg3
		Debug: "#719cd6", // blue
		Info:  "#81b29a", // green
		Warn:  "#dbc074", // yellow
		Error: "#c94f6d", // red
		Fatal: "#d16983", // red bright

		Accent: "#9d79d6", // magenta
		Danger: "#c94f6d", // red
		Muted:  "#738091", // comment

		Key:         "#63cdcf", // cyan
		String:      "#81b29a", // green
		Number:      "#f4a261", // orange
		Bool:        "#c94f6d", // red
		Null:        "#738091", // comment
		Punctuation: "#aeafb0", // fg2
	}
}

func slateTheme() Theme {
	// Tailwind CSS Slate/Sky palette: https://tailwindcss.com/docs/colors
	return Theme{
		Name: "Slate",

		Trace: "#64748b", // slate-500
		Debug: "#38bdf8", // sky-400
		Info:  "#22c55e", // green-500
		Warn:  "#f59e0b", // amber-500
		Error: "#ef4444", // red-500
		Fatal: "#f87171", // red-400

		Accent: "#06b6d4", // cyan-500
		Danger: "#dc2626", // red-600
		Muted:  "#94a3b8", // slate-400

		Key:         "#7dd3fc", // sky-300
		String:      "#22c55e", // green-500
		Number:      "#f59e0b", // amber-500
		Bool:        "#ef4444", // red-500
		Null:        "#64748b", // slate-500
		Punctuation: "#94a3b8", // slate-400
	}
}
