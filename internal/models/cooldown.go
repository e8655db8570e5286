package models

type CooldownBarType string

const (
	CooldownBarRegular     CooldownBarType = "Regular"
	CooldownBarBandage     CooldownBarType = "Bandage"
	CooldownBarCriminal    CooldownBarType = "Criminal"
	CooldownBarPvP         CooldownBarType = "PvP"
	CooldownBarWeaponSwing CooldownBarType = "WeaponSwing"
	CooldownBarWalk        CooldownBarType = "Walk"
)

// CooldownBarTypes lists the known bar types in declaration order.
var CooldownBarTypes = []CooldownBarType{
	CooldownBarRegular,
	CooldownBarBandage,
	CooldownBarCriminal,
	CooldownBarPvP,
	CooldownBarWeaponSwing,
	CooldownBarWalk,
}

// ParseCooldownBarType maps s onto the closed set. Unknown values become Regular.
func ParseCooldownBarType(s string) CooldownBarType {
	for _, t := range CooldownBarTypes {
		if string(t) == s {
			return t
		}
	}
	return CooldownBarRegular
}

type TriggerType string

const (
	TriggerSysMessage      TriggerType = "SysMessage"
	TriggerOverheadMessage TriggerType = "OverheadMessage"
	TriggerBuffAdded       TriggerType = "BuffAdded"
	TriggerBuffRemoved     TriggerType = "BuffRemoved"
)

var TriggerTypes = []TriggerType{
	TriggerSysMessage,
	TriggerOverheadMessage,
	TriggerBuffAdded,
	TriggerBuffRemoved,
}

// ParseTriggerType maps s onto the closed set. Unknown values become SysMessage.
func ParseTriggerType(s string) TriggerType {
	for _, t := range TriggerTypes {
		if string(t) == s {
			return t
		}
	}
	return TriggerSysMessage
}

const (
	DefaultShowCooldownGump  = true
	DefaultCooldownBarHeight = 20
	DefaultCooldownBarWidth  = 200
)

type Settings struct {
	ShowCooldownGump  bool    `json:"showCooldownGump"`
	CooldownBarHeight float64 `json:"cooldownBarHeight"`
	CooldownBarWidth  float64 `json:"cooldownBarWidth"`
}

// DefaultSettings returns the settings injected when a document carries none.
func DefaultSettings() Settings {
	return Settings{
		ShowCooldownGump:  DefaultShowCooldownGump,
		CooldownBarHeight: DefaultCooldownBarHeight,
		CooldownBarWidth:  DefaultCooldownBarWidth,
	}
}

// SettingsPatch carries a partial settings update. Nil fields are left untouched.
type SettingsPatch struct {
	ShowCooldownGump  *bool    `json:"showCooldownGump,omitempty"`
	CooldownBarHeight *float64 `json:"cooldownBarHeight,omitempty"`
	CooldownBarWidth  *float64 `json:"cooldownBarWidth,omitempty"`
}

func (s Settings) Apply(p SettingsPatch) Settings {
	if p.ShowCooldownGump != nil {
		s.ShowCooldownGump = *p.ShowCooldownGump
	}
	if p.CooldownBarHeight != nil {
		s.CooldownBarHeight = *p.CooldownBarHeight
	}
	if p.CooldownBarWidth != nil {
		s.CooldownBarWidth = *p.CooldownBarWidth
	}
	return s
}

type Trigger struct {
	TriggerType TriggerType `json:"triggerType"`
	Duration    float64     `json:"duration"`
	TriggerText string      `json:"triggerText"`
}

// NewTrigger returns the trigger appended by the editor's "add trigger" action.
func NewTrigger() Trigger {
	return Trigger{TriggerType: TriggerSysMessage}
}

type Entry struct {
	Name             string          `json:"name"`
	DefaultCooldown  float64         `json:"defaultCooldown"`
	CooldownBarType  CooldownBarType `json:"cooldownBarType"`
	Hue              float64         `json:"hue"`
	HideWhenInactive bool            `json:"hideWhenInactive"`
	Triggers         []Trigger       `json:"triggers"`
}

// NewEntry returns the entry appended by the editor's "add entry" action.
func NewEntry() Entry {
	return Entry{
		CooldownBarType:  CooldownBarRegular,
		HideWhenInactive: true,
		Triggers:         []Trigger{},
	}
}

func (e Entry) Clone() Entry {
	out := e
	out.Triggers = make([]Trigger, len(e.Triggers))
	copy(out.Triggers, e.Triggers)
	return out
}

// Document is the root of a cooldowns file. Settings is nil only for documents
// that were built by hand and never normalized.
type Document struct {
	Settings *Settings `json:"generalSettings"`
	Entries  []Entry   `json:"entries"`
}

func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	out := &Document{Entries: make([]Entry, len(d.Entries))}
	if d.Settings != nil {
		s := *d.Settings
		out.Settings = &s
	}
	for i, e := range d.Entries {
		out.Entries[i] = e.Clone()
	}
	return out
}

// EnsureSettings injects default settings when none are present.
func (d *Document) EnsureSettings() {
	if d.Settings == nil {
		s := DefaultSettings()
		d.Settings = &s
	}
}
