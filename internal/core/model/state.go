package model

// SessionState is a snapshot of the session state machine.
type SessionState struct {
	Mode                Mode `yaml:"mode" json:"mode"`
	RemainingSeconds    int  `yaml:"remaining_seconds" json:"remaining_seconds"`
	Running             bool `yaml:"running" json:"running"`
	CompletedFocusCount int  `yaml:"completed_focus_count" json:"completed_focus_count"`
}

// TriggerState is a snapshot of the trigger engine.
type TriggerState struct {
	InteractionCount int      `yaml:"interaction_count" json:"interaction_count"`
	HotspotClicks    int      `yaml:"hotspot_clicks" json:"hotspot_clicks"`
	KeySequence      []string `yaml:"key_sequence" json:"key_sequence"`

	Celebration      bool `yaml:"celebration" json:"celebration"`
	SecretFound      bool `yaml:"secret_found" json:"secret_found"`
	FlavorMessage    bool `yaml:"flavor_message" json:"flavor_message"`
	Sparkles         bool `yaml:"sparkles" json:"sparkles"`
	AlternatePalette bool `yaml:"alternate_palette" json:"alternate_palette"`
	SecretEverFound  bool `yaml:"secret_ever_found" json:"secret_ever_found"`
}
