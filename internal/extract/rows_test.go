package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folha-dev/folha/internal/layout"
	"github.com/folha-dev/folha/internal/model"
)

func foldPages(pages ...[]model.Token) ([]model.Row, []model.Diagnostic) {
	s := newTableState(layout.DefaultLineTolerance, DefaultFurnitureFilter())
	for i, p := range pages {
		s.FoldPage(i, p)
	}
	return s.Finish()
}

func withHeader(lines ...[]model.Token) []model.Token {
	all := append(toks(tk("Rubrica", 50, 800)), headerLine(760)...)
	for _, l := range lines {
		all = append(all, l...)
	}
	return all
}

func TestTableState_PlainRows(t *testing.T) {
	rows, diags := foldPages(withHeader(
		toks(tk("001", 50, 740), tk("Salário", 100, 740), tk("Base", 150, 740), tkw("3.000,00", 360, 740, 40)),
		toks(tk("310", 50, 720), tk("INSS", 100, 720), tkw("330,00", 460, 720, 30)),
		toks(tk("AB12", 50, 700), tk("Sem valor", 100, 700)),
	))
	assert.Empty(t, diags)
	assert.Equal(t, []model.Row{
		{Code: "001", Description: "Salário Base", Income: "3.000,00"},
		{Code: "310", Description: "INSS", Deduction: "330,00"},
		{Code: "AB12", Description: "Sem valor"},
	}, rows)
}

func TestTableState_ContinuationStripsMoney(t *testing.T) {
	rows, _ := foldPages(withHeader(
		toks(tk("002", 50, 740), tk("Vale", 100, 740), tkw("200,00", 460, 740, 30)),
		toks(tk("Alimentação", 100, 730), tkw("999,99", 360, 730, 30)),
	))
	require.Len(t, rows, 1)
	assert.Equal(t, "Vale Alimentação", rows[0].Description)
	assert.Equal(t, "200,00", rows[0].Deduction)
	assert.Empty(t, rows[0].Income)
}

func TestTableState_OrphanContinuationDiscarded(t *testing.T) {
	rows, _ := foldPages(withHeader(
		toks(tk("linha solta", 100, 740)),
		toks(tk("001", 50, 720), tk("Salário Base", 100, 720)),
	))
	require.Len(t, rows, 1)
	assert.Equal(t, "Salário Base", rows[0].Description)
}

func TestTableState_CodeGluedToDescription(t *testing.T) {
	rows, _ := foldPages(withHeader(
		toks(tk("001 Salário Base", 50, 740), tkw("3.000,00", 360, 740, 40)),
	))
	require.Len(t, rows, 1)
	assert.Equal(t, model.Row{Code: "001", Description: "Salário Base", Income: "3.000,00"}, rows[0])
}

func TestTableState_Deduplicates(t *testing.T) {
	row := toks(tk("001", 50, 740), tk("Salário Base", 100, 740), tkw("3.000,00", 360, 740, 40))
	rows, _ := foldPages(withHeader(row), withHeader(row))
	require.Len(t, rows, 1)
}

func TestTableState_DeduplicatesAfterContinuation(t *testing.T) {
	// the first row only reaches its final description through a continuation line
	rows, _ := foldPages(withHeader(
		toks(tk("050", 50, 740), tk("Adiantamento", 100, 740), tkw("1.500,00", 360, 740, 40)),
		toks(tk("de 13º Salário", 100, 730)),
		toks(tk("050", 50, 700), tk("Adiantamento de 13º Salário", 100, 700), tkw("1.500,00", 360, 700, 40)),
	))
	require.Len(t, rows, 1)
	assert.Equal(t, "Adiantamento de 13º Salário", rows[0].Description)
}

func TestTableState_NoDuplicateTuples(t *testing.T) {
	lines := [][]model.Token{
		toks(tk("001", 50, 740), tk("A", 100, 740), tkw("1,00", 360, 740, 20)),
		toks(tk("002", 50, 720), tk("B", 100, 720)),
		toks(tk("001", 50, 700), tk("A", 100, 700), tkw("1,00", 360, 700, 20)),
		toks(tk("002", 50, 680), tk("B", 100, 680)),
		toks(tk("002", 50, 660), tk("B", 100, 660), tkw("1,00", 460, 660, 20)),
	}
	rows, _ := foldPages(withHeader(lines...), withHeader(lines...))
	seen := map[string]bool{}
	for _, r := range rows {
		assert.False(t, seen[r.Key()], "duplicate row %s", r.Key())
		seen[r.Key()] = true
	}
	assert.Len(t, rows, 3)
}

func TestTableState_MultipleValuesKeepsFirst(t *testing.T) {
	rows, diags := foldPages(withHeader(
		toks(tk("120", 50, 740), tk("Ajuste", 100, 740), tkw("10,00", 360, 740, 25), tkw("4,00", 460, 740, 20)),
	))
	require.Len(t, rows, 1)
	assert.Equal(t, "10,00", rows[0].Income)
	assert.Empty(t, rows[0].Deduction)
	require.Len(t, diags, 1)
	assert.Equal(t, model.DiagMultipleValues, diags[0].Kind)
	assert.Contains(t, diags[0].Detail, "120")
}

func TestTableState_SkipsPageWithoutHeader(t *testing.T) {
	rows, diags := foldPages(
		toks(tk("001", 50, 740), tk("Salário Base", 100, 740), tkw("3.000,00", 360, 740, 40)),
		withHeader(toks(tk("002", 50, 740), tk("Vale Transporte", 100, 740), tkw("150,00", 360, 740, 30))),
	)
	require.Len(t, rows, 1)
	assert.Equal(t, "002", rows[0].Code)
	require.Len(t, diags, 1)
	assert.Equal(t, model.DiagHeaderNotFound, diags[0].Kind)
	assert.Equal(t, 0, diags[0].Page)
}

func TestTableState_ContinuationAcrossPages(t *testing.T) {
	rows, _ := foldPages(
		withHeader(toks(tk("002", 50, 740), tk("Vale", 100, 740), tkw("200,00", 360, 740, 30))),
		withHeader(toks(tk("Alimentação", 100, 740))),
	)
	require.Len(t, rows, 1)
	assert.Equal(t, "Vale Alimentação", rows[0].Description)
}
