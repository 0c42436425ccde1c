package models

import (
	"net/url"
	"strconv"
	"strings"
)

// Direction filters departures by travel direction
type Direction = string

const (
	DirectionSouth Direction = "s"
	DirectionNorth Direction = "n"
)

// CommandETD is the only API command this module issues
const CommandETD = "etd"

// Params holds the query parameters for one ETD request
// Command and JSON are fixed; Origin and Direction come from the caller
type Params struct {
	Command   string
	Origin    string
	Direction Direction
	APIKey    string
	JSON      string
}

// Values renders the parameters in the form the BART API expects
func (p Params) Values() url.Values {
	v := url.Values{}
	v.Set("cmd", p.Command)
	v.Set("orig", p.Origin)
	v.Set("dir", p.Direction)
	v.Set("key", p.APIKey)
	v.Set("json", p.JSON)
	return v
}

// Document is a decoded JSON response, as produced by encoding/json into an interface{}
// Live responses and captured fixtures share this representation
type Document = any

// Departures is the result of one departure lookup
// An absent result means the API could not be reached; a present result with
// no minutes means the station has no departures right now
type Departures struct {
	Minutes []int
	present bool
}

// None returns the absent result
func None() Departures {
	return Departures{}
}

// Some returns a present result; a nil slice becomes an empty one
func Some(minutes []int) Departures {
	if minutes == nil {
		minutes = []int{}
	}
	return Departures{Minutes: minutes, present: true}
}

// Get returns the minutes and whether the result is present
func (d Departures) Get() ([]int, bool) {
	return d.Minutes, d.present
}

// Present reports whether the lookup produced a result
func (d Departures) Present() bool {
	return d.present
}

// String renders the minutes as "[3, 7, 0]", or "" when absent
func (d Departures) String() string {
	if !d.present {
		return ""
	}

	parts := make([]string, len(d.Minutes))
	for i, m := range d.Minutes {
		parts[i] = strconv.Itoa(m)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// DeparturesResponse is the API response format for a station lookup
type DeparturesResponse struct {
	Station   string    `json:"station"`
	Direction Direction `json:"direction"`
	Data      []int     `json:"data"`
}
