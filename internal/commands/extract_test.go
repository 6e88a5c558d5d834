package commands_test

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/folha-dev/folha/internal/runlog"
)

func TestExtract_Report(t *testing.T) {
	src := tempPDF(t, "folha-2025-11.pdf")
	writePayroll(t, src)

	out, err := runFolha(t, "extract", src, "--no-xlsx")
	require.NoError(t, err, out)

	assert.Contains(t, out, "Salário Base")
	assert.Contains(t, out, "Desconto Alimentação")
	assert.Contains(t, out, "Salário Líquido Total: 3.456,78")
	assert.Contains(t, out, "Alimentação/Cesta: 150,00")
	assert.Contains(t, out, "Transporte: 180,00")
	assert.Contains(t, out, "13º Salário: 1.500,00")
	assert.Contains(t, out, "Folha contém 13º salário!")
	assert.NotContains(t, out, "aviso:")
	assert.NotContains(t, out, "verification conflict")
}

func TestExtract_DefaultSpreadsheet(t *testing.T) {
	src := tempPDF(t, "folha.pdf")
	writePayroll(t, src)

	_, err := runFolha(t, "extract", src)
	require.NoError(t, err)

	f, err := excelize.OpenFile(filepath.Join(filepath.Dir(src), "folha.xlsx"))
	require.NoError(t, err)
	defer f.Close()

	v, err := f.GetCellValue("Resumo_Rubricas", "B1")
	require.NoError(t, err)
	assert.Equal(t, "3.456,78", v)
	v, err = f.GetCellValue("Resumo_Rubricas", "B8")
	require.NoError(t, err)
	assert.Equal(t, "Adiantamento de 13º Salário", v)
}

func TestExtract_Copy(t *testing.T) {
	src := tempPDF(t, "folha.pdf")
	writePayroll(t, src)

	out, err := runFolha(t, "extract", src, "--no-xlsx", "--copy")
	require.NoError(t, err)
	assert.Equal(t, "3456,78\n150,00\n180,00\n1500,00\n", out)
}

func TestExtract_CSVAndLog(t *testing.T) {
	src := tempPDF(t, "folha.pdf")
	writePayroll(t, src)
	dir := filepath.Dir(src)
	csvPath := filepath.Join(dir, "rows.csv")

	_, err := runFolha(t, "extract", src, "--no-xlsx", "--csv", csvPath, "--log-dir", dir)
	require.NoError(t, err)

	f, err := os.Open(csvPath)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 6)
	assert.Equal(t, []string{"030", "Vale Transporte", "180,00", "", "transport"}, records[4])

	entries, err := runlog.Read(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "folha.pdf", entries[0].Source)
	assert.Equal(t, 5, entries[0].Rows)
	assert.Equal(t, "3.456,78", entries[0].NetSalary)
	assert.Equal(t, "1500.00", entries[0].Thirteenth.StringFixed(2))
	assert.False(t, entries[0].Conflict)
}

func TestExtract_SectionNotFound(t *testing.T) {
	src := tempPDF(t, "ferias.pdf")
	writeUnrelated(t, src)

	out, err := runFolha(t, "extract", src, "--no-xlsx")
	require.Error(t, err)
	assert.Contains(t, out, "não foi possível localizar a seção 'Resumo Geral da Folha de Pagamento por Rubrica'")
}

func TestExtract_MissingFile(t *testing.T) {
	out, err := runFolha(t, "extract", tempPDF(t, "ghost.pdf"), "--no-xlsx")
	require.Error(t, err)
	assert.Contains(t, out, "opening")
}

func TestExtract_CustomConfig(t *testing.T) {
	src := tempPDF(t, "folha.pdf")
	writePayroll(t, src)
	cfgPath := filepath.Join(filepath.Dir(src), "custom.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("extraction:\n  section_marker: Relatório Inexistente\n"), 0o644))

	out, err := runFolha(t, "extract", src, "--no-xlsx", "--config", cfgPath)
	require.Error(t, err)
	assert.Contains(t, out, "Relatório Inexistente")
}
