package tilt

import "strconv"

// Property is one presentation custom property, e.g. "--rotate-x: 10deg".
type Property struct {
	Name  string
	Value string
}

// PropertySetter receives custom properties, typically a style declaration.
type PropertySetter interface {
	SetProperty(name, value string)
}

// Properties renders the state as the card's custom properties, in a stable order.
func (s State) Properties() []Property {
	return []Property{
		{"--pointer-x", num(s.PercentX) + "%"},
		{"--pointer-y", num(s.PercentY) + "%"},
		{"--background-x", num(s.BackgroundX) + "%"},
		{"--background-y", num(s.BackgroundY) + "%"},
		{"--pointer-from-center", num(s.PointerFromCenter)},
		{"--pointer-from-top", num(s.PointerFromTop)},
		{"--pointer-from-left", num(s.PointerFromLeft)},
		{"--rotate-x", num(s.RotateX) + "deg"},
		{"--rotate-y", num(s.RotateY) + "deg"},
	}
}

// Apply writes every property to dst.
func (s State) Apply(dst PropertySetter) {
	for _, p := range s.Properties() {
		dst.SetProperty(p.Name, p.Value)
	}
}

// StyleMap is a PropertySetter backed by a map.
type StyleMap map[string]string

func (m StyleMap) SetProperty(name, value string) {
	m[name] = value
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
