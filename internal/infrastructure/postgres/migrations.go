package postgres

import "embed"

// Migrations esquema SQL versionado (formato golang-migrate), embebido en el binario.
//
//go:embed migrations/*.sql
var Migrations embed.FS
