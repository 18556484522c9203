package moto

import "time"

// Registered is published when a motorcycle joins the fleet.
type Registered struct {
	MotoID ID        `json:"moto_id"`
	Year   int       `json:"year"`
	Model  string    `json:"model"`
	Plate  string    `json:"plate"`
	At     time.Time `json:"at"`
}

func (e Registered) EventName() string     { return "moto.registered" }
func (e Registered) AggregateID() string   { return string(e.MotoID) }
func (e Registered) OccurredAt() time.Time { return e.At }
