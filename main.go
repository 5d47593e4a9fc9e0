package main

import (
	"github.com/dawctl/dawctl/cmd"

	// Registered backends.
	_ "github.com/dawctl/dawctl/internal/llm/ollama"
	_ "github.com/dawctl/dawctl/internal/llm/openaicompat"
	_ "github.com/dawctl/dawctl/internal/platform/windows"
)

func main() {
	cmd.Execute()
}
