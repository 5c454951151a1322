package domain

import (
	"encoding/json"
	"time"
)

const (
	DeviceWebsite = "website"
	DeviceMobile  = "mobile"

	// PlaceholderName is the project name until the AI picks one.
	PlaceholderName = "Untitled Project"

	MaxUserInputLength = 2000
)

func ValidDevice(d string) bool {
	return d == DeviceWebsite || d == DeviceMobile
}

// Project is one mockup session: a prompt, a device type and its screens.
// UserID holds the owner's email.
type Project struct {
	ID                int64           `json:"id"`
	ProjectID         string          `json:"project_id"`
	UserID            string          `json:"user_id"`
	UserInput         string          `json:"user_input"`
	Device            string          `json:"device"`
	ProjectName       string          `json:"project_name"`
	Theme             string          `json:"theme"`
	VisualDescription string          `json:"project_visual_description"`
	Screenshot        *string         `json:"screenshot"`
	Config            json.RawMessage `json:"config,omitempty"`
	CreatedOn         time.Time       `json:"created_on"`
	Screens           []Screen        `json:"screens,omitempty"`
}

// Screen is a generated page. Code is nil until the screen has been rendered.
type Screen struct {
	ID          int64   `json:"id"`
	ProjectID   string  `json:"project_id"`
	ScreenID    string  `json:"screen_id"`
	ScreenName  string  `json:"screen_name"`
	Purpose     string  `json:"purpose"`
	Description string  `json:"screen_description"`
	Code        *string `json:"code"`
}

func (s Screen) HasCode() bool {
	return s.Code != nil && *s.Code != ""
}

// ProjectUpdate carries the fields to change; nil leaves a column untouched.
type ProjectUpdate struct {
	ProjectName *string
	Theme       *string
	Screenshot  *string
}

// ScreenRef identifies a screen across projects.
type ScreenRef struct {
	ProjectID string
	ScreenID  string
}

// GeneratedConfig is the JSON document the model returns for a new project.
type GeneratedConfig struct {
	ProjectName              string         `json:"projectName"`
	Theme                    string         `json:"theme"`
	ProjectVisualDescription string         `json:"projectVisualDescription"`
	Screens                  []ConfigScreen `json:"screens"`
}

type ConfigScreen struct {
	ScreenID          string `json:"screenId"`
	Name              string `json:"name"`
	Purpose           string `json:"purpose"`
	LayoutDescription string `json:"layoutDescription"`
}
