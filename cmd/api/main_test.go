package main

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// El middleware de swagger carga docs/swagger.json al arrancar: si el
// archivo falta o no parsea, el binario muere en el arranque. Este test
// fija que el archivo versionado existe, es JSON válido y documenta las
// rutas que el router registra.
func TestSwaggerJSON_ExisteYCubreLasRutas(t *testing.T) {
	raw, err := os.ReadFile("../../docs/swagger.json")
	require.NoError(t, err, "docs/swagger.json debe estar versionado en el repo")

	var doc struct {
		Swagger string                     `json:"swagger"`
		Paths   map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Equal(t, "2.0", doc.Swagger)

	for _, path := range []string{
		"/health",
		"/api/auth/register",
		"/api/auth/login",
		"/api/farms",
		"/api/farms/me",
		"/api/ponds",
		"/api/ponds/{id}",
		"/api/cycles",
		"/api/cycles/{id}",
		"/api/cycles/{id}/close",
		"/api/ledger/movements",
		"/api/ledger/transfers",
		"/api/ledger/balance",
		"/api/samplings",
		"/api/harvests",
	} {
		assert.Contains(t, doc.Paths, path)
	}
}
