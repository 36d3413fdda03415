// cmd/viraldb/main.go
package main

import (
	"github.com/agudeloromero/mmseq-viral-db/internal/app"
	"github.com/agudeloromero/mmseq-viral-db/internal/appshell"
)

func main() {
	appshell.Main(app.RunContext)
}
