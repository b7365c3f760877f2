package insighting

import "errors"

var (
	ErrInvalidSalesFilter = errors.New("filtro de vendas inválido, use daily, weekly ou monthly")
	ErrLoadSnapshot       = errors.New("erro ao carregar dados do painel")
)
