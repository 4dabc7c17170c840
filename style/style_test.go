package style

import "testing"

func TestSetTheme_Known(t *testing.T) {
	defer SetTheme("dark")

	for _, name := range ThemeNames {
		if !SetTheme(name) {
			t.Fatalf("SetTheme(%q) = false", name)
		}
		if CurrentThemeName != name {
			t.Errorf("CurrentThemeName = %q, want %q", CurrentThemeName, name)
		}
	}
}

func TestSetTheme_Unknown(t *testing.T) {
	defer SetTheme("dark")

	SetTheme("light")
	if SetTheme("neon") {
		t.Fatal("SetTheme(neon) = true")
	}
	if CurrentThemeName != "light" {
		t.Errorf("unknown theme changed CurrentThemeName to %q", CurrentThemeName)
	}
	if IsDark() {
		t.Error("IsDark() = true for light")
	}
}

func TestThemeNamesCoverThemes(t *testing.T) {
	if len(ThemeNames) != len(Themes) {
		t.Fatalf("ThemeNames has %d entries, Themes has %d", len(ThemeNames), len(Themes))
	}
	for _, n := range ThemeNames {
		if _, ok := Themes[n]; !ok {
			t.Errorf("ThemeNames lists %q but Themes lacks it", n)
		}
	}
}
