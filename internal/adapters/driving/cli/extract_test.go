package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/contas/internal/core/domain"
)

func TestExtract(t *testing.T) {
	setupCLI(t)

	out, err := execute(t, "", "extract",
		"--from", "boleto@enel.com.br",
		"--subject", "Sua conta de energia",
		"Valor: R$ 187,45.")

	require.NoError(t, err)
	assert.Contains(t, out, "Valor:      R$ 187,45")
	assert.Contains(t, out, "Categoria:  Energia")
	assert.Contains(t, out, "Tipo:       despesa")
}

func TestExtract_NoAmount(t *testing.T) {
	setupCLI(t)

	out, err := execute(t, "", "extract", "sua fatura chegou")

	require.NoError(t, err)
	assert.Contains(t, out, "não encontrado")
}

func TestExtract_JSON(t *testing.T) {
	setupCLI(t)

	out, err := execute(t, "", "extract", "--json", "Você recebeu um Pix de R$ 50,00")

	require.NoError(t, err)
	assert.Contains(t, out, `"amount": 50`)
	assert.Contains(t, out, `"direction": "income"`)
}

func TestExtract_RequiresText(t *testing.T) {
	setupCLI(t)

	_, err := execute(t, "", "extract")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
