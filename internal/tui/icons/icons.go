// ABOUTME: Icon system with Nerd Font detection and Unicode fallback
// ABOUTME: Provides inventory iconography across different terminal capabilities

package icons

import (
	"os"
	"strings"
	"sync"
)

var (
	useNerdFonts     bool
	nerdFontDetected sync.Once
)

// EnvNerdFonts forces Nerd Fonts on (1/true) or off (anything else)
const EnvNerdFonts = "INVENTARIO_NERD_FONTS"

// detectNerdFonts checks if Nerd Fonts should be used
func detectNerdFonts() bool {
	// Explicit override via environment variable
	if env := os.Getenv(EnvNerdFonts); env != "" {
		return env == "1" || strings.ToLower(env) == "true"
	}

	// Check for terminals known to commonly have Nerd Fonts
	term := os.Getenv("TERM")
	termProgram := os.Getenv("TERM_PROGRAM")

	// iTerm2, Alacritty, WezTerm, Kitty typically have Nerd Fonts
	nerdFontTerminals := []string{
		"iTerm.app",
		"alacritty",
		"WezTerm",
		"kitty",
		"ghostty",
	}

	for _, t := range nerdFontTerminals {
		if strings.Contains(termProgram, t) || strings.Contains(term, strings.ToLower(t)) {
			return true
		}
	}

	// Check for common Nerd Font environment indicators
	if os.Getenv("NERD_FONTS") == "1" {
		return true
	}

	// Default to Unicode fallback for maximum compatibility
	return false
}

// HasNerdFonts returns true if Nerd Fonts are available
func HasNerdFonts() bool {
	nerdFontDetected.Do(func() {
		useNerdFonts = detectNerdFonts()
	})
	return useNerdFonts
}

// Icon represents an icon with Nerd Font and Unicode fallback variants
type Icon struct {
	NerdFont string
	Fallback string
}

// String returns the appropriate icon based on font availability
func (i Icon) String() string {
	if HasNerdFonts() {
		return i.NerdFont
	}
	return i.Fallback
}

// Icon definitions - Nerd Font codepoints with Unicode fallbacks
var (
	// Sections
	Dashboard  = Icon{"\U000F056E", "◈"} // nf-md-view_dashboard
	Product    = Icon{"\U000F03D7", "▣"} // nf-md-package_variant
	Category   = Icon{"\U000F04F9", "◆"} // nf-md-tag
	Stock      = Icon{"\U000F0F81", "▤"} // nf-md-warehouse
	Movement   = Icon{"\U000F04E1", "⇄"} // nf-md-swap_horizontal
	Users      = Icon{"\U000F0849", "☺"} // nf-md-account_group
	Logs       = Icon{"\U000F0C47", "≡"} // nf-md-text_box_search
	User       = Icon{"\U000F0004", "●"} // nf-md-account
	Money      = Icon{"\U000F0116", "$"} // nf-md-cash
	Lock       = Icon{"\U000F033E", "⊘"} // nf-md-lock

	// Status indicators
	CheckOK  = Icon{"\uF058", "✓"} // nf-fa-check_circle
	Warning  = Icon{"\uF071", "⚠"} // nf-fa-warning
	Critical = Icon{"\uF057", "✗"} // nf-fa-times_circle
	Info     = Icon{"\uF05A", "ℹ"} // nf-fa-info_circle

	// Movement direction
	TrendUp   = Icon{"\U000F0535", "↗"} // nf-md-trending_up
	TrendDown = Icon{"\U000F0533", "↘"} // nf-md-trending_down

	// Actions
	Refresh = Icon{"\U000F0450", "↻"} // nf-md-refresh
	Logout  = Icon{"\U000F0343", "⏏"} // nf-md-logout
	Quit    = Icon{"\U000F05FC", "×"} // nf-md-exit_to_app

	// Application
	App = Icon{"\U000F03D6", "▦"} // nf-md-package
)

// ForView returns the sidebar icon for a section name
func ForView(name string) Icon {
	switch name {
	case "dashboard":
		return Dashboard
	case "products":
		return Product
	case "categories":
		return Category
	case "inventory":
		return Stock
	case "movements":
		return Movement
	case "users":
		return Users
	case "logs":
		return Logs
	default:
		return Info
	}
}
