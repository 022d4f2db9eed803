package fuzz

import (
	"github.com/brunokim/inferd/parser"
)

func Fuzz(data []byte) int {
	_, err := parser.ParseProgram(string(data))
	if err != nil {
		return 0
	}
	return 1
}
