package keybind

import (
	"embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/soundbored/soundbored-go/internal/api"
)

//go:embed assets/autohotkey.ahk.tmpl
var scriptFS embed.FS

var scriptTmpl = template.Must(template.ParseFS(scriptFS, "assets/autohotkey.ahk.tmpl"))

type scriptBind struct {
	Hotkey  string
	GuildID string
	Kind    string // "play", "stop" or "record"
	SoundID string
}

type scriptData struct {
	Token   string
	BaseURL string
	Binds   []scriptBind
}

// GenerateAutoHotkey renders an AutoHotkey script that triggers the bound
// commands over HTTP with the given automation token. Binds without a key
// or without a command are skipped.
func GenerateAutoHotkey(baseURL, token string, binds []Keybind) (string, error) {
	data := scriptData{Token: token, BaseURL: baseURL}

	for _, b := range binds {
		if b.KeyCombination.Key == "" || b.Command.IsZero() {
			continue
		}

		var hotkey strings.Builder
		if b.KeyCombination.IsControl {
			hotkey.WriteByte('^')
		}
		if b.KeyCombination.IsAlt {
			hotkey.WriteByte('!')
		}
		hotkey.WriteString(b.KeyCombination.Key)

		sb := scriptBind{Hotkey: hotkey.String(), GuildID: b.GuildID}
		switch {
		case b.Command.Sound != nil:
			sb.Kind = "play"
			sb.SoundID = api.EscapeSoundID(b.Command.Sound.ID)
		default:
			sb.Kind = string(b.Command.Builtin)
		}
		data.Binds = append(data.Binds, sb)
	}

	var out strings.Builder
	if err := scriptTmpl.Execute(&out, data); err != nil {
		return "", fmt.Errorf("keybind: render script: %w", err)
	}
	return out.String(), nil
}
