package display

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/pixil98/go-maze/internal/game"
)

var templateFuncs = sprig.TxtFuncMap()

// ExpandTemplate expands a template string using the provided data.
func ExpandTemplate(tmplStr string, data any) (string, error) {
	tmpl, err := template.New("").Funcs(templateFuncs).Parse(tmplStr)
	if err != nil {
		return "", fmt.Errorf("parsing template: %w", err)
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, data)
	if err != nil {
		return "", fmt.Errorf("executing template: %w", err)
	}

	return buf.String(), nil
}

// EventTemplates are the notice formats keyed by action kind. Fields come
// from EventView.
var EventTemplates = map[game.ActionKind]string{
	game.ActionUse: `{{ if .SelfApplied }}You{{ else }}{{ .Applier }}{{ end }} used ` +
		`{{ .Item }} on {{ if .SelfTarget }}you{{ else }}{{ .Target }}{{ end }}` +
		`{{ with .Effect }} ({{ . | lower }}){{ end }}`,
	game.ActionChat: `{{ if .SelfApplied }}You{{ else }}{{ .Applier }}{{ end }}: {{ .Text | trunc 60 }}`,
	game.ActionPick: `{{ .Applier }} found {{ .Item }}`,
}

// EventView is the data an event template sees.
type EventView struct {
	Applier     string
	Target      string
	Item        string
	Effect      string
	Text        string
	SelfApplied bool
	SelfTarget  bool
}

// PlayerName is how players are shown.
func PlayerName(id int) string {
	return fmt.Sprintf("Player %d", id+1)
}

// EventText renders ev as seen by viewer. Events without a template render
// as an empty string.
func EventText(ev game.Event, viewer int) (string, error) {
	tmpl, ok := EventTemplates[ev.Action.Kind]
	if !ok {
		return "", nil
	}

	view := EventView{
		Applier:     PlayerName(ev.Action.Applier),
		Target:      PlayerName(ev.Action.Target),
		Text:        ev.Action.Text,
		SelfApplied: ev.Action.Applier == viewer,
		SelfTarget:  ev.Action.Target == viewer,
	}
	if ev.ItemKind != game.ItemUnknown {
		view.Item = Title(ev.ItemKind.String())
		if fx := ev.ItemKind.Effect(); fx != game.EffectNone {
			view.Effect = EffectName(fx)
		}
	}

	return ExpandTemplate(tmpl, view)
}
