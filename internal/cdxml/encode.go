package cdxml

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/abianche/uoo-cooldown-manager/internal/models"
)

// Header is written before every encoded document.
const Header = `<?xml version="1.0" encoding="utf-8" standalone="yes"?>` + "\n"

// Encode renders doc as an indented cooldowns file. A document without
// settings is written with the default settings.
func Encode(doc *models.Document) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("encode: nil document")
	}

	settings := models.DefaultSettings()
	if doc.Settings != nil {
		settings = *doc.Settings
	}

	node := cooldownsNode{
		Entries: make([]entryNode, 0, len(doc.Entries)),
		Settings: &settingsNode{
			ShowCooldownGump:  settings.ShowCooldownGump,
			CooldownBarHeight: settings.CooldownBarHeight,
			CooldownBarWidth:  settings.CooldownBarWidth,
		},
	}
	for _, e := range doc.Entries {
		en := entryNode{
			Name:             e.Name,
			DefaultCooldown:  e.DefaultCooldown,
			CooldownBarType:  string(e.CooldownBarType),
			Hue:              e.Hue,
			HideWhenInactive: e.HideWhenInactive,
			Triggers:         make([]triggerNode, 0, len(e.Triggers)),
		}
		for _, t := range e.Triggers {
			en.Triggers = append(en.Triggers, triggerNode{
				TriggerType: string(t.TriggerType),
				Duration:    t.Duration,
				TriggerText: t.TriggerText,
			})
		}
		node.Entries = append(node.Entries, en)
	}

	var buf bytes.Buffer
	buf.WriteString(Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(node); err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
