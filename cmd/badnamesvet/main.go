// Command badnamesvet runs the badnames analyzer as a standalone vet tool.
//
// Запуск:
//
//	badnamesvet ./...
//
// или через go vet:
//
//	go vet -vettool=$(which badnamesvet) ./...
package main

import (
	"golang.org/x/tools/go/analysis/singlechecker"

	"badnames/internal/goanalysis"
)

func main() {
	singlechecker.Main(goanalysis.Analyzer)
}
