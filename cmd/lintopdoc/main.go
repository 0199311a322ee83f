package main

import (
	"github.com/opdoc-labs/opdoc/internal/lintopdoc"
	"golang.org/x/tools/go/analysis/singlechecker"
)

func main() {
	singlechecker.Main(lintopdoc.Analyzer)
}
