package tenant

import "errors"

var (
	// ErrCrossTenantDenied indica tentativa de leitura global por um
	// contexto que não é master.
	ErrCrossTenantDenied = errors.New("consulta entre tenants permitida apenas para o master")

	// ErrPurgeMaster indica tentativa de expurgo do tenant master,
	// que é sempre recusada independente do chamador.
	ErrPurgeMaster = errors.New("dados do tenant master não podem ser removidos")
)
