package model

import "strings"

// Token is a run of text placed on a page by the PDF text layer.
// X, Y is the baseline origin in PDF space (y grows upward).
type Token struct {
	Text   string
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// CenterX returns the horizontal center of the token.
func (t Token) CenterX() float64 {
	return t.X + t.Width/2
}

// Line is a set of tokens sharing a baseline, ordered left to right.
type Line struct {
	Tokens []Token
}

// Text joins the line's tokens with single spaces.
func (l Line) Text() string {
	parts := make([]string, len(l.Tokens))
	for i, t := range l.Tokens {
		parts[i] = t.Text
	}
	return strings.Join(parts, " ")
}

// Y returns the baseline of the first token, or 0 for an empty line.
func (l Line) Y() float64 {
	if len(l.Tokens) == 0 {
		return 0
	}
	return l.Tokens[0].Y
}
