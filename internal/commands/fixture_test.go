package commands_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/folha-dev/folha/internal/testpdf"
)

// payrollPage is a one-page summary table: five rows, three of them
// categorized, and a net salary of 3.456,78.
func payrollPage() []testpdf.Run {
	return []testpdf.Run{
		{X: 50, Y: 800, S: "Resumo Geral da Folha de Pagamento por Rubrica"},
		{X: 50, Y: 780, S: "Rubrica"},
		{X: 100, Y: 780, S: "Descrição"},
		{X: 350, Y: 780, S: "Rendimentos"},
		{X: 450, Y: 780, S: "Descontos"},

		{X: 50, Y: 760, S: "001"},
		{X: 100, Y: 760, S: "Salário Base"},
		{X: 350, Y: 760, S: "3.000,00"},
		{X: 50, Y: 745, S: "020"},
		{X: 100, Y: 745, S: "Alimentação"},
		{X: 350, Y: 745, S: "200,00"},
		{X: 50, Y: 730, S: "021"},
		{X: 100, Y: 730, S: "Desconto Alimentação"},
		{X: 450, Y: 730, S: "50,00"},
		{X: 50, Y: 715, S: "030"},
		{X: 100, Y: 715, S: "Vale Transporte"},
		{X: 350, Y: 715, S: "180,00"},
		{X: 50, Y: 700, S: "050"},
		{X: 100, Y: 700, S: "Adiantamento de 13º Salário"},
		{X: 350, Y: 700, S: "1.500,00"},

		{X: 50, Y: 650, S: "Total de Funcionários: 3"},
		{X: 300, Y: 640, S: "Salário Líquido"},
		{X: 320, Y: 625, S: "3.456,78"},
	}
}

func writePayroll(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, testpdf.Write(path, payrollPage()))
}

func writeUnrelated(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, testpdf.Write(path, []testpdf.Run{{X: 50, Y: 800, S: "Relatório de Férias"}}))
}

func tempPDF(t *testing.T, name string) string {
	t.Helper()
	return filepath.Join(t.TempDir(), name)
}
