package handler

import (
	"gatepass/internal/settings"
)

// WindowResponse is the wire form of the event window.
type WindowResponse struct {
	Day1Enabled bool `json:"day1_enabled"`
	Day2Enabled bool `json:"day2_enabled"`
}

// FromWindow converts the window to its wire form.
func FromWindow(w settings.Window) WindowResponse {
	return WindowResponse{
		Day1Enabled: w.Day1Enabled,
		Day2Enabled: w.Day2Enabled,
	}
}
