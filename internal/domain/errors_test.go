package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_KindEMensagem(t *testing.T) {
	err := fmt.Errorf("criar indústria: %w", Conflict("CNPJ já está em uso"))

	assert.True(t, errors.Is(err, ErrConflict))
	assert.False(t, errors.Is(err, ErrNotFound))

	msg, ok := PublicMessage(err)
	assert.True(t, ok)
	assert.Equal(t, "CNPJ já está em uso", msg)
}

func TestPublicMessage_ErroComum(t *testing.T) {
	_, ok := PublicMessage(errors.New("dial tcp: connection refused"))
	assert.False(t, ok)
}
