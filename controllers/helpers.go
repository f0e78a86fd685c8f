package controllers

// Created is the standard response for new items
type Created struct {
	ID string `json:"id"`
}

// Toggled is the standard response for switched flags
type Toggled struct {
	State bool `json:"state"`
}
