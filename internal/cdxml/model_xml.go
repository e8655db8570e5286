package cdxml

import "encoding/xml"

// Wire shapes used by Encode. Element names match the ones Decode produces keys for.

type cooldownsNode struct {
	XMLName  xml.Name      `xml:"cooldowns"`
	Entries  []entryNode   `xml:"cooldownentry"`
	Settings *settingsNode `xml:"generalsettings"`
}

type entryNode struct {
	Name             string        `xml:"name"`
	DefaultCooldown  float64       `xml:"defaultcooldown"`
	CooldownBarType  string        `xml:"cooldownbartype"`
	Hue              float64       `xml:"hue"`
	HideWhenInactive bool          `xml:"hidewheninactive"`
	Triggers         []triggerNode `xml:"trigger"`
}

type triggerNode struct {
	TriggerType string  `xml:"triggertype"`
	Duration    float64 `xml:"duration"`
	TriggerText string  `xml:"triggertext"`
}

type settingsNode struct {
	ShowCooldownGump  bool    `xml:"showCooldownGump"`
	CooldownBarHeight float64 `xml:"cooldownBarHeight"`
	CooldownBarWidth  float64 `xml:"cooldownBarWidth"`
}
