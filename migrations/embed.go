// Package migrations expõe os arquivos SQL do goose embutidos no binário.
package migrations

import "embed"

// FS contém todos os arquivos *.sql deste diretório.
//
//go:embed *.sql
var FS embed.FS
