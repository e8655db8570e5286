// Package schema turns the loosely typed tree produced by the XML decoder into
// a canonical models.Document.
//
// XML carries no notion of "list of one", so every repeated element may
// arrive either as a bare node or as a sequence. Normalize upgrades both
// cooldownentry and trigger to sequences before shaping them.
package schema

import (
	"fmt"

	"github.com/abianche/uoo-cooldown-manager/internal/models"
)

// Element and field names of the cooldowns format.
const (
	KeyCooldowns        = "cooldowns"
	KeyEntry            = "cooldownentry"
	KeySettings         = "generalsettings"
	KeyName             = "name"
	KeyDefaultCooldown  = "defaultcooldown"
	KeyCooldownBarType  = "cooldownbartype"
	KeyHue              = "hue"
	KeyHideWhenInactive = "hidewheninactive"
	KeyTrigger          = "trigger"
	KeyTriggerType      = "triggertype"
	KeyDuration         = "duration"
	KeyTriggerText      = "triggertext"
	KeyShowCooldownGump = "showCooldownGump"
	KeyBarHeight        = "cooldownBarHeight"
	KeyBarWidth         = "cooldownBarWidth"
)

// Normalize validates raw and coerces it into a Document. It does not mutate
// raw and returns a *ValidationError on failure.
func Normalize(raw map[string]any) (*models.Document, error) {
	rootVal, ok := raw[KeyCooldowns]
	if !ok || rootVal == nil {
		return nil, invalid(KeyCooldowns, "required element is missing")
	}
	root, err := asObject(rootVal, KeyCooldowns)
	if err != nil {
		return nil, err
	}

	entriesPath := KeyCooldowns + "." + KeyEntry
	entriesVal, ok := root[KeyEntry]
	if !ok || entriesVal == nil {
		return nil, invalid(entriesPath, "required element is missing")
	}

	items := asSequence(entriesVal)
	doc := &models.Document{Entries: make([]models.Entry, 0, len(items))}
	for i, item := range items {
		entry, err := normalizeEntry(item, fmt.Sprintf("%s[%d]", entriesPath, i))
		if err != nil {
			return nil, err
		}
		doc.Entries = append(doc.Entries, entry)
	}

	settings, err := normalizeSettings(root[KeySettings], KeyCooldowns+"."+KeySettings)
	if err != nil {
		return nil, err
	}
	doc.Settings = &settings

	return doc, nil
}

func normalizeSettings(v any, path string) (models.Settings, error) {
	if v == nil {
		return models.DefaultSettings(), nil
	}
	obj, err := asObject(v, path)
	if err != nil {
		return models.Settings{}, err
	}

	var s models.Settings
	if s.ShowCooldownGump, err = coerceBool(obj[KeyShowCooldownGump], models.DefaultShowCooldownGump, path+"."+KeyShowCooldownGump); err != nil {
		return models.Settings{}, err
	}
	if s.CooldownBarHeight, err = coerceNumber(obj[KeyBarHeight], models.DefaultCooldownBarHeight, path+"."+KeyBarHeight); err != nil {
		return models.Settings{}, err
	}
	if s.CooldownBarWidth, err = coerceNumber(obj[KeyBarWidth], models.DefaultCooldownBarWidth, path+"."+KeyBarWidth); err != nil {
		return models.Settings{}, err
	}
	return s, nil
}

func normalizeEntry(v any, path string) (models.Entry, error) {
	obj, err := asObject(v, path)
	if err != nil {
		return models.Entry{}, err
	}

	var e models.Entry
	if e.Name, err = requireString(obj, KeyName, path+"."+KeyName); err != nil {
		return models.Entry{}, err
	}
	if e.DefaultCooldown, err = coerceNumber(obj[KeyDefaultCooldown], 0, path+"."+KeyDefaultCooldown); err != nil {
		return models.Entry{}, err
	}

	barType, err := enumText(obj, KeyCooldownBarType, path+"."+KeyCooldownBarType)
	if err != nil {
		return models.Entry{}, err
	}
	e.CooldownBarType = models.ParseCooldownBarType(barType)

	if e.Hue, err = coerceNumber(obj[KeyHue], 0, path+"."+KeyHue); err != nil {
		return models.Entry{}, err
	}
	if e.HideWhenInactive, err = coerceBool(obj[KeyHideWhenInactive], false, path+"."+KeyHideWhenInactive); err != nil {
		return models.Entry{}, err
	}

	triggers := asSequence(obj[KeyTrigger])
	e.Triggers = make([]models.Trigger, 0, len(triggers))
	for i, item := range triggers {
		t, err := normalizeTrigger(item, fmt.Sprintf("%s.%s[%d]", path, KeyTrigger, i))
		if err != nil {
			return models.Entry{}, err
		}
		e.Triggers = append(e.Triggers, t)
	}

	return e, nil
}

func normalizeTrigger(v any, path string) (models.Trigger, error) {
	obj, err := asObject(v, path)
	if err != nil {
		return models.Trigger{}, err
	}

	var t models.Trigger
	triggerType, err := enumText(obj, KeyTriggerType, path+"."+KeyTriggerType)
	if err != nil {
		return models.Trigger{}, err
	}
	t.TriggerType = models.ParseTriggerType(triggerType)

	if t.Duration, err = coerceNumber(obj[KeyDuration], 0, path+"."+KeyDuration); err != nil {
		return models.Trigger{}, err
	}
	if t.TriggerText, err = requireString(obj, KeyTriggerText, path+"."+KeyTriggerText); err != nil {
		return models.Trigger{}, err
	}
	return t, nil
}
