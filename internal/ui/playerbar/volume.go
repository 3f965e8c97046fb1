package playerbar

import "fmt"

// RenderVolumeCompact renders the volume indicator.
// Format: "🔊 100%" or "🔇 100%" when muted
func RenderVolumeCompact(volume float64, muted bool) string {
	pct := int(volume*100 + 0.5)
	icon := volumeSymbol
	if muted {
		icon = muteSymbol
	}
	return timeStyle.Render(fmt.Sprintf("%s %3d%%", icon, pct))
}
