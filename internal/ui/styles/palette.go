package styles

import (
	"image/color"
	"os"

	"charm.land/lipgloss/v2"

	"github.com/raphi011/btm/internal/config"
)

// Palette defines the colors of the UI components
type Palette struct {
	Primary color.Color // main accent color (borders, titles)
	Accent  color.Color // highlight color (selected items)
	Success color.Color // success indicators (checkmarks)
	Error   color.Color // error messages
	Muted   color.Color // disabled/inactive text
	Normal  color.Color // standard text
	Info    color.Color // informational text
	Warning color.Color // warning indicators
}

// paletteFamily groups light and dark variants of a palette
type paletteFamily struct {
	Light *Palette // nil if no light variant
	Dark  *Palette // nil if no dark variant
}

// Preset palettes - Dark variants
var (
	// DefaultPalette is the default color scheme (dark only)
	DefaultPalette = Palette{
		Primary: lipgloss.Color("62"),  // cyan/teal
		Accent:  lipgloss.Color("212"), // pink/magenta
		Success: lipgloss.Color("82"),  // green
		Error:   lipgloss.Color("196"), // red
		Muted:   lipgloss.Color("240"), // dark gray
		Normal:  lipgloss.Color("252"), // light gray
		Info:    lipgloss.Color("244"), // gray
		Warning: lipgloss.Color("214"), // orange
	}

	DraculaPalette = Palette{
		Primary: lipgloss.Color("#bd93f9"), // purple
		Accent:  lipgloss.Color("#ff79c6"), // pink
		Success: lipgloss.Color("#50fa7b"), // green
		Error:   lipgloss.Color("#ff5555"), // red
		Muted:   lipgloss.Color("#6272a4"), // comment
		Normal:  lipgloss.Color("#f8f8f2"), // foreground
		Info:    lipgloss.Color("#8be9fd"), // cyan
		Warning: lipgloss.Color("#ffb86c"), // orange
	}

	NordPalette = Palette{
		Primary: lipgloss.Color("#88c0d0"), // nord8
		Accent:  lipgloss.Color("#b48ead"), // nord15
		Success: lipgloss.Color("#a3be8c"), // nord14
		Error:   lipgloss.Color("#bf616a"), // nord11
		Muted:   lipgloss.Color("#4c566a"), // nord3
		Normal:  lipgloss.Color("#eceff4"), // nord6
		Info:    lipgloss.Color("#81a1c1"), // nord9
		Warning: lipgloss.Color("#ebcb8b"), // nord13
	}

	GruvboxPalette = Palette{
		Primary: lipgloss.Color("#83a598"),
		Accent:  lipgloss.Color("#d3869b"),
		Success: lipgloss.Color("#b8bb26"),
		Error:   lipgloss.Color("#fb4934"),
		Muted:   lipgloss.Color("#665c54"),
		Normal:  lipgloss.Color("#ebdbb2"),
		Info:    lipgloss.Color("#8ec07c"),
		Warning: lipgloss.Color("#fabd2f"),
	}

	CatppuccinMochaPalette = Palette{
		Primary: lipgloss.Color("#89b4fa"),
		Accent:  lipgloss.Color("#f5c2e7"),
		Success: lipgloss.Color("#a6e3a1"),
		Error:   lipgloss.Color("#f38ba8"),
		Muted:   lipgloss.Color("#6c7086"),
		Normal:  lipgloss.Color("#cdd6f4"),
		Info:    lipgloss.Color("#94e2d5"),
		Warning: lipgloss.Color("#fab387"),
	}

	// NonePalette renders without any colors (uses terminal defaults)
	// Formatting (bold/italic/underline) is preserved
	NonePalette = Palette{
		Primary: lipgloss.NoColor{},
		Accent:  lipgloss.NoColor{},
		Success: lipgloss.NoColor{},
		Error:   lipgloss.NoColor{},
		Muted:   lipgloss.NoColor{},
		Normal:  lipgloss.NoColor{},
		Info:    lipgloss.NoColor{},
		Warning: lipgloss.NoColor{},
	}
)

// Preset palettes - Light variants
var (
	NordLightPalette = Palette{
		Primary: lipgloss.Color("#5e81ac"),
		Accent:  lipgloss.Color("#b48ead"),
		Success: lipgloss.Color("#a3be8c"),
		Error:   lipgloss.Color("#bf616a"),
		Muted:   lipgloss.Color("#9a9a9a"),
		Normal:  lipgloss.Color("#2e3440"),
		Info:    lipgloss.Color("#81a1c1"),
		Warning: lipgloss.Color("#d08770"),
	}

	GruvboxLightPalette = Palette{
		Primary: lipgloss.Color("#076678"),
		Accent:  lipgloss.Color("#8f3f71"),
		Success: lipgloss.Color("#79740e"),
		Error:   lipgloss.Color("#9d0006"),
		Muted:   lipgloss.Color("#928374"),
		Normal:  lipgloss.Color("#3c3836"),
		Info:    lipgloss.Color("#427b58"),
		Warning: lipgloss.Color("#b57614"),
	}

	CatppuccinLattePalette = Palette{
		Primary: lipgloss.Color("#1e66f5"),
		Accent:  lipgloss.Color("#ea76cb"),
		Success: lipgloss.Color("#40a02b"),
		Error:   lipgloss.Color("#d20f39"),
		Muted:   lipgloss.Color("#9ca0b0"),
		Normal:  lipgloss.Color("#4c4f69"),
		Info:    lipgloss.Color("#179299"),
		Warning: lipgloss.Color("#fe640b"),
	}
)

// paletteFamilies maps config.ValidPalettes to their light/dark variants
var paletteFamilies = map[string]paletteFamily{
	"none":       {Light: &NonePalette, Dark: &NonePalette},
	"default":    {Dark: &DefaultPalette},
	"dracula":    {Dark: &DraculaPalette},
	"nord":       {Light: &NordLightPalette, Dark: &NordPalette},
	"gruvbox":    {Light: &GruvboxLightPalette, Dark: &GruvboxPalette},
	"catppuccin": {Light: &CatppuccinLattePalette, Dark: &CatppuccinMochaPalette},
}

// currentPalette holds the active palette
var currentPalette = DefaultPalette

// hasDarkBackground is replaced in tests.
var hasDarkBackground = func() bool {
	return lipgloss.HasDarkBackground(os.Stdin, os.Stderr)
}

// Current returns the active palette
func Current() Palette {
	return currentPalette
}

// Init applies the palette and symbols selected by cfg.
// Call this after loading config and before rendering any UI.
func Init(cfg config.UIConfig) {
	p := selectPalette(cfg.Palette, cfg.Mode)
	currentPalette = p
	applyPalette(p)
	SetNerdfont(cfg.Nerdfont)
}

// selectPalette picks the variant of name matching mode. Config
// validation guarantees known names; anything else falls back to default.
func selectPalette(name, mode string) Palette {
	family, ok := paletteFamilies[name]
	if !ok {
		family = paletteFamilies["default"]
	}

	var p *Palette
	switch mode {
	case "light":
		p = family.Light
	case "dark":
		p = family.Dark
	default:
		if hasDarkBackground() {
			p = family.Dark
		} else {
			p = family.Light
		}
	}

	// Fall back if the requested variant doesn't exist
	if p == nil {
		if family.Dark != nil {
			p = family.Dark
		} else {
			p = family.Light
		}
	}
	return *p
}

// applyPalette updates all global style variables to use p
func applyPalette(p Palette) {
	Primary = p.Primary
	Accent = p.Accent
	Success = p.Success
	Error = p.Error
	Muted = p.Muted
	Normal = p.Normal
	Info = p.Info
	Warning = p.Warning

	PrimaryStyle = lipgloss.NewStyle().Foreground(p.Primary)
	AccentStyle = lipgloss.NewStyle().Foreground(p.Accent).Bold(true)
	SuccessStyle = lipgloss.NewStyle().Foreground(p.Success)
	ErrorStyle = lipgloss.NewStyle().Foreground(p.Error)
	MutedStyle = lipgloss.NewStyle().Foreground(p.Muted)
	NormalStyle = lipgloss.NewStyle().Foreground(p.Normal)
	InfoStyle = lipgloss.NewStyle().Foreground(p.Info).Italic(true)
	WarningStyle = lipgloss.NewStyle().Foreground(p.Warning)
}
