package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folha-dev/folha/internal/model"
)

func totalsPage(candidates ...model.Token) []model.Token {
	base := toks(
		tkw("Salário", 100, 300, 40),
		tkw("Líquido", 160, 300, 40),
		tk("Funcionários", 300, 300),
	)
	return append(candidates, base...)
}

func TestLocateNetSalary_NearestToLabelCenter(t *testing.T) {
	// label center is (100 + 160 + 40) / 2 = 150; the far candidate is
	// centered at 400 with its left edge still inside the box
	near := tkw("3.456,78", 130, 280, 40)
	far := tkw("9.999,99", 240, 280, 320)
	v, ok := LocateNetSalary(totalsPage(far, near), DefaultTotalsOptions())
	require.True(t, ok)
	assert.Equal(t, "3.456,78", v)
}

func TestLocateNetSalary_TieKeepsSourceOrder(t *testing.T) {
	// centers 130 and 170, both 20 away from the label center
	left := tkw("1,00", 120, 280, 20)
	right := tkw("2,00", 160, 280, 20)
	v, ok := LocateNetSalary(totalsPage(left, right), DefaultTotalsOptions())
	require.True(t, ok)
	assert.Equal(t, "1,00", v)

	v, ok = LocateNetSalary(totalsPage(right, left), DefaultTotalsOptions())
	require.True(t, ok)
	assert.Equal(t, "2,00", v)
}

func TestLocateNetSalary_BoxEdges(t *testing.T) {
	tests := []struct {
		name string
		tok  model.Token
		want bool
	}{
		{"near edge", tkw("1,00", 130, 298, 20), true},
		{"far edge", tkw("1,00", 130, 260, 20), true},
		{"too close to label", tkw("1,00", 130, 299, 20), false},
		{"too far from label", tkw("1,00", 130, 259, 20), false},
		{"left margin", tkw("1,00", 80, 280, 20), true},
		{"past left margin", tkw("1,00", 79, 280, 20), false},
		{"right margin", tkw("1,00", 250, 280, 20), true},
		{"past right margin", tkw("1,00", 251, 280, 20), false},
		{"not monetary", tkw("1.00", 130, 280, 20), false},
	}
	for _, tt := range tests {
		_, ok := LocateNetSalary(totalsPage(tt.tok), DefaultTotalsOptions())
		assert.Equal(t, tt.want, ok, tt.name)
	}
}

func TestLocateNetSalary_NeedsAnchor(t *testing.T) {
	tokens := toks(tkw("Salário", 100, 300, 40), tkw("Líquido", 160, 300, 40), tkw("3.456,78", 130, 280, 40))
	_, ok := LocateNetSalary(tokens, DefaultTotalsOptions())
	assert.False(t, ok)
}

func TestLocateNetSalary_LabelsMustNotSitAboveAnchor(t *testing.T) {
	tokens := toks(
		tkw("Salário", 100, 400, 40),
		tkw("Líquido", 160, 400, 40),
		tkw("3.456,78", 130, 380, 40),
		tk("Funcionários", 300, 300),
	)
	_, ok := LocateNetSalary(tokens, DefaultTotalsOptions())
	assert.False(t, ok)
}

func TestLocateNetSalary_SingleLabelToken(t *testing.T) {
	tokens := toks(
		tkw("3.456,78", 130, 280, 40),
		tkw("Salário Líquido", 100, 300, 100),
		tk("Total de funcionarios", 300, 302),
	)
	v, ok := LocateNetSalary(tokens, DefaultTotalsOptions())
	require.True(t, ok)
	assert.Equal(t, "3.456,78", v)
}

func TestTotalsState_StopsAtFirstHit(t *testing.T) {
	s := newTotalsState(DefaultTotalsOptions())
	s.FoldPage(0, nil)
	assert.False(t, s.Done())
	s.FoldPage(1, totalsPage(tkw("1.000,00", 130, 280, 40)))
	require.True(t, s.Done())
	s.FoldPage(2, totalsPage(tkw("2.000,00", 130, 280, 40)))
	v, ok := s.Value()
	assert.True(t, ok)
	assert.Equal(t, "1.000,00", v)
}
