package utils

import (
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/pkg/errors"
)

// IDAlphabet e IDLength definem o formato dos IDs de clientes e vendas
const (
	IDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	IDLength   = 10
)

func GenerateID() (string, error) {
	id, err := gonanoid.Generate(IDAlphabet, IDLength)
	if err != nil {
		return "", errors.Wrap(err, "falha ao gerar id")
	}
	return id, nil
}
