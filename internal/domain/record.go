package domain

import (
	"encoding/json"
	"fmt"
)

// ID aceita tanto string quanto número nas coleções legadas.
// Internamente toda comparação é feita sobre a forma textual.
type ID string

func (id ID) String() string {
	return string(id)
}

func (id ID) IsZero() bool {
	return id == ""
}

// UnmarshalJSON normaliza ids numéricos de registros antigos para string.
func (id *ID) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		*id = ""
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id inválido: %s", string(data))
	}
	*id = ID(n.String())
	return nil
}

// Record é o contrato mínimo que todo registro persistido em coleção cumpre.
// O repositório usa esses métodos para atribuir e verificar o escopo do tenant.
type Record interface {
	RecordID() ID
	RecordTenant() string
	AssignTenant(tenantID string)
	Validate() error
}
