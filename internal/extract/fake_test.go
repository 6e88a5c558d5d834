package extract

import (
	"context"
	"errors"
	"strings"

	"github.com/folha-dev/folha/internal/model"
)

type fakePage struct {
	tokens []model.Token
}

func (p fakePage) Tokens() []model.Token { return p.tokens }

func (p fakePage) PlainText() string {
	parts := make([]string, len(p.tokens))
	for i, t := range p.tokens {
		parts[i] = t.Text
	}
	return strings.Join(parts, " ")
}

type fakeDoc struct {
	pages   []fakePage
	failAt  int // -1 disables
	fetched []int
}

func newFakeDoc(pages ...fakePage) *fakeDoc {
	return &fakeDoc{pages: pages, failAt: -1}
}

func (d *fakeDoc) NumPages() int { return len(d.pages) }

func (d *fakeDoc) Page(_ context.Context, index int) (Page, error) {
	d.fetched = append(d.fetched, index)
	if index == d.failAt {
		return nil, errors.New("corrupt page")
	}
	return d.pages[index], nil
}

// tk builds a token with a width derived from the text length.
func tk(text string, x, y float64) model.Token {
	return model.Token{Text: text, X: x, Y: y, Width: float64(len([]rune(text))) * 5, Height: 8}
}

func tkw(text string, x, y, width float64) model.Token {
	return model.Token{Text: text, X: x, Y: y, Width: width, Height: 8}
}

// headerLine is the column header with Rendimentos at x=350 (w=60) and
// Descontos at x=450, so the column midpoint is 430.
func headerLine(y float64) []model.Token {
	return []model.Token{
		tkw("Rubrica", 50, y, 35),
		tkw("Descrição", 100, y, 45),
		tkw("Rendimentos", 350, y, 60),
		tkw("Descontos", 450, y, 50),
	}
}

func page(groups ...[]model.Token) fakePage {
	var p fakePage
	for _, g := range groups {
		p.tokens = append(p.tokens, g...)
	}
	return p
}

func toks(t ...model.Token) []model.Token { return t }
